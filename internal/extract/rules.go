package extract

import (
	"regexp"
	"strings"
)

// fieldRule binds a header pattern to a single-value field. Rules are
// data-driven so adding a field means adding a table row, not a code path.
type fieldRule struct {
	header  *regexp.Regexp
	applied func(*JobFields) bool
	assign  func(*JobFields, string)
}

// sectionRule binds a section header to a list field collected from the
// bullet lines under it.
type sectionRule struct {
	header  *regexp.Regexp
	applied func(*JobFields) bool
	assign  func(*JobFields, []string)
}

var fieldRules = []fieldRule{
	{
		header:  regexp.MustCompile(`(?i)^(job\s+title|position|role)\b`),
		applied: func(f *JobFields) bool { return f.Title != nil },
		assign:  func(f *JobFields, v string) { f.Title = &v },
	},
	{
		header:  regexp.MustCompile(`(?i)^(company|employer|organization)\b`),
		applied: func(f *JobFields) bool { return f.Company != nil },
		assign:  func(f *JobFields, v string) { f.Company = &v },
	},
	{
		header:  regexp.MustCompile(`(?i)^location\b`),
		applied: func(f *JobFields) bool { return f.Location != nil },
		assign:  func(f *JobFields, v string) { f.Location = &v },
	},
	{
		header:  regexp.MustCompile(`(?i)^(salary|compensation|pay\s+range)\b`),
		applied: func(f *JobFields) bool { return f.Salary != nil },
		assign:  func(f *JobFields, v string) { f.Salary = &v },
	},
	{
		header:  regexp.MustCompile(`(?i)^(employment\s+type|job\s+type)\b`),
		applied: func(f *JobFields) bool { return f.JobType != nil },
		assign:  func(f *JobFields, v string) { f.JobType = &v },
	},
}

var sectionRules = []sectionRule{
	{
		header:  regexp.MustCompile(`(?i)^(key\s+)?responsibilit(y|ies)\b|^duties\b|^what\s+you('|’)ll\s+do\b`),
		applied: func(f *JobFields) bool { return f.Responsibilities != nil },
		assign:  func(f *JobFields, v []string) { f.Responsibilities = v },
	},
	{
		header:  regexp.MustCompile(`(?i)^requirements?\b|^what\s+we('|’)re\s+looking\s+for\b|^must\s+have\b`),
		applied: func(f *JobFields) bool { return f.Requirements != nil },
		assign:  func(f *JobFields, v []string) { f.Requirements = v },
	},
	{
		header:  regexp.MustCompile(`(?i)^(preferred\s+)?qualifications?\b|^nice\s+to\s+have\b|^education\b`),
		applied: func(f *JobFields) bool { return f.Qualifications != nil },
		assign:  func(f *JobFields, v []string) { f.Qualifications = v },
	},
}

// Whole-document heuristics for fields that rarely get explicit headers.
var (
	jobTypePatterns = []struct {
		re    *regexp.Regexp
		value string
	}{
		{regexp.MustCompile(`(?i)\bfull[\s-]?time\b`), "FULL_TIME"},
		{regexp.MustCompile(`(?i)\bpart[\s-]?time\b`), "PART_TIME"},
		{regexp.MustCompile(`(?i)\b(contract|contractor|freelance)\b`), "CONTRACT"},
		{regexp.MustCompile(`(?i)\bintern(ship)?\b`), "INTERNSHIP"},
	}

	remotePattern        = regexp.MustCompile(`(?i)\b(remote|work\s+from\s+home|wfh|fully\s+distributed)\b`)
	internationalPattern = regexp.MustCompile(`(?i)\b(visa\s+sponsorship|international\s+(applicants|candidates)|relocation\s+(support|assistance))\b`)

	// anyHeader recognizes known section headers when deciding where a
	// section body stops.
	anyHeaderRes = func() []*regexp.Regexp {
		res := make([]*regexp.Regexp, 0, len(fieldRules)+len(sectionRules))
		for _, r := range fieldRules {
			res = append(res, r.header)
		}
		for _, r := range sectionRules {
			res = append(res, r.header)
		}
		return res
	}()
)

func anyHeaderPattern(line string) bool {
	for _, re := range anyHeaderRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// applyDocumentHeuristics fills job type, remote and international
// eligibility from keyword scans when no explicit header supplied them.
func applyDocumentHeuristics(fields *JobFields, text string) {
	if fields.JobType == nil {
		for _, p := range jobTypePatterns {
			if p.re.MatchString(text) {
				v := p.value
				fields.JobType = &v
				break
			}
		}
	} else {
		// Normalize a header-supplied value onto the same constants.
		for _, p := range jobTypePatterns {
			if p.re.MatchString(*fields.JobType) {
				v := p.value
				fields.JobType = &v
				break
			}
		}
	}

	if fields.Remote == nil {
		if remotePattern.MatchString(text) {
			v := true
			fields.Remote = &v
		} else if fields.Location != nil && strings.EqualFold(*fields.Location, "remote") {
			v := true
			fields.Remote = &v
		}
	}

	if fields.International == nil && internationalPattern.MatchString(text) {
		v := true
		fields.International = &v
	}
}
