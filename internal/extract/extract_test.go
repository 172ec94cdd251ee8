package extract_test

import (
	"testing"

	"hirehub-backend/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeaderValues(t *testing.T) {
	doc := []byte("Job Title: Backend Engineer\nCompany: Acme Corp\nLocation: Berlin, Germany\nSalary: EUR 70k-90k\n")

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Backend Engineer", *fields.Title)
	require.NotNil(t, fields.Company)
	assert.Equal(t, "Acme Corp", *fields.Company)
	require.NotNil(t, fields.Location)
	assert.Equal(t, "Berlin, Germany", *fields.Location)
	require.NotNil(t, fields.Salary)
	assert.Equal(t, "EUR 70k-90k", *fields.Salary)

	// No evidence means no field, not a default.
	assert.Nil(t, fields.Remote)
	assert.Nil(t, fields.Responsibilities)
}

func TestExtractHeaderOnOwnLine(t *testing.T) {
	doc := []byte("Position\nSenior Go Developer\n\nLocation\nAmsterdam\n")

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Senior Go Developer", *fields.Title)
	require.NotNil(t, fields.Location)
	assert.Equal(t, "Amsterdam", *fields.Location)
}

func TestExtractFirstMatchWins(t *testing.T) {
	doc := []byte("Job Title: Backend Engineer\nRole: Something Else\n")

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Backend Engineer", *fields.Title)
}

func TestExtractSections(t *testing.T) {
	doc := []byte(`Job Title: Backend Engineer

Responsibilities:
- Design and build APIs
- Own the deployment pipeline
* Review code

Requirements:
1. 5 years of Go
2) Production Postgres experience

Qualifications:
• BSc in Computer Science
`)

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Design and build APIs",
		"Own the deployment pipeline",
		"Review code",
	}, fields.Responsibilities)
	assert.Equal(t, []string{
		"5 years of Go",
		"Production Postgres experience",
	}, fields.Requirements)
	assert.Equal(t, []string{"BSc in Computer Science"}, fields.Qualifications)
}

func TestExtractSectionStopsAtNextHeader(t *testing.T) {
	doc := []byte(`Responsibilities:
- Build things
Salary: 100k
`)

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Build things"}, fields.Responsibilities)
	require.NotNil(t, fields.Salary)
	assert.Equal(t, "100k", *fields.Salary)
}

func TestExtractDocumentHeuristics(t *testing.T) {
	t.Run("keywords set job type, remote and international", func(t *testing.T) {
		doc := []byte("We offer a full-time position, fully remote. Visa sponsorship available.\n")

		fields, err := extract.Extract(doc)
		require.NoError(t, err)

		require.NotNil(t, fields.JobType)
		assert.Equal(t, "FULL_TIME", *fields.JobType)
		require.NotNil(t, fields.Remote)
		assert.True(t, *fields.Remote)
		require.NotNil(t, fields.International)
		assert.True(t, *fields.International)
	})

	t.Run("header-supplied job type is normalized", func(t *testing.T) {
		doc := []byte("Employment Type: Part-time\n")

		fields, err := extract.Extract(doc)
		require.NoError(t, err)

		require.NotNil(t, fields.JobType)
		assert.Equal(t, "PART_TIME", *fields.JobType)
	})

	t.Run("location Remote implies remote", func(t *testing.T) {
		doc := []byte("Job Title: Engineer\nLocation: Remote\n")

		fields, err := extract.Extract(doc)
		require.NoError(t, err)

		require.NotNil(t, fields.Remote)
		assert.True(t, *fields.Remote)
	})
}

func TestExtractUndecodable(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := extract.Extract(nil)
		assert.ErrorIs(t, err, extract.ErrUndecodable)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		_, err := extract.Extract([]byte{0xff, 0xfe, 0x00, 0x01})
		assert.ErrorIs(t, err, extract.ErrUndecodable)
	})

	t.Run("corrupt PDF fails whole extraction", func(t *testing.T) {
		_, err := extract.Extract([]byte("%PDF-1.7 garbage"))
		assert.ErrorIs(t, err, extract.ErrUndecodable)
	})
}

func TestExtractNothingFound(t *testing.T) {
	doc := []byte("An unrelated paragraph about nothing in particular.\n")

	fields, err := extract.Extract(doc)
	require.NoError(t, err)

	assert.Nil(t, fields.Title)
	assert.Nil(t, fields.Company)
	assert.Nil(t, fields.Location)
	assert.Nil(t, fields.Salary)
	assert.Nil(t, fields.JobType)
	assert.Nil(t, fields.Remote)
	assert.Nil(t, fields.International)
	assert.Nil(t, fields.Responsibilities)
}
