package v1

import (
	"errors"
	"io"
	"net/http"

	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/extract"
	"hirehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxExtractSize caps uploaded documents at 10 MB.
const maxExtractSize = 10 << 20

type ExtractHandler struct{}

func NewExtractHandler(recruiter *gin.RouterGroup) {
	handler := &ExtractHandler{}
	recruiter.POST("/jobs/extract", handler.Extract)
}

// Extract godoc
// @Summary      Extract job fields from a document
// @Description  Best-effort extraction of job posting fields from an uploaded PDF or plain-text document. Fields without evidence are omitted from the result.
// @Tags         recruiter-jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Job posting document (PDF or text)"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs/extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	data, err := h.readDocument(c)
	if err != nil {
		c.Error(err)
		return
	}

	fields, err := extract.Extract(data)
	if err != nil {
		if errors.Is(err, extract.ErrUndecodable) {
			c.Error(apperror.BadRequest("Document could not be decoded"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Fields extracted", fields)
}

// readDocument accepts either a multipart "file" field or a raw request body.
func (h *ExtractHandler) readDocument(c *gin.Context) ([]byte, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > maxExtractSize {
			return nil, apperror.BadRequest("Document exceeds the 10MB limit")
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, apperror.BadRequest("Could not read uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxExtractSize+1))
		if err != nil {
			return nil, apperror.BadRequest("Could not read uploaded file")
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxExtractSize+1))
	if err != nil || len(data) == 0 {
		return nil, apperror.BadRequest("Request carried no document")
	}
	if len(data) > maxExtractSize {
		return nil, apperror.BadRequest("Document exceeds the 10MB limit")
	}
	return data, nil
}
