package v1

import (
	"net/http"

	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"
	"hirehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC       domain.ApplicationUsecase
	frontendURL string
}

// NewApplicationHandler registers the candidate apply flow and the
// recruiter-side application management routes.
func NewApplicationHandler(candidate *gin.RouterGroup, recruiter *gin.RouterGroup, appUC domain.ApplicationUsecase, frontendURL string) {
	handler := &ApplicationHandler{appUC: appUC, frontendURL: frontendURL}

	apps := candidate.Group("/applications")
	{
		apps.POST("", handler.Apply)
		apps.GET("", handler.ListMine)
		apps.GET("/:id", handler.GetMine)
	}

	recruiter.GET("/jobs/:id/applications", handler.ListByJob)
	recruiter.GET("/jobs/:id/applications/export", handler.Export)
	recruiter.POST("/jobs/:id/applications", handler.AddCandidate)
	recruiter.GET("/applications/:id", handler.Get)
	recruiter.PATCH("/applications/:id", handler.Update)
}

type ApplyRequest struct {
	JobID       int64  `json:"job_id" binding:"required"`
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter"`
}

type ApplyResponse struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type AddCandidateRequest struct {
	CandidateID int64  `json:"candidate_id" binding:"required"`
	Source      string `json:"source" binding:"required,oneof=ADDED REFERRED DISCOVERED"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Creates an application against a published job. A job that is missing or not published yields 404; a repeat apply yields 409.
// @Tags         candidate-applications
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.appUC.Apply(c.Request.Context(), middleware.UserID(c), req.JobID, req.ResumeURL, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	path := usecase.ApplicationPath(app.ID)
	response.Success(c, http.StatusCreated, "Application submitted", ApplyResponse{
		ID:   app.ID,
		Path: path,
		URL:  h.frontendURL + path,
	})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.appUC.GetMyApplications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", apps)
}

func (h *ApplicationHandler) GetMine(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	app, err := h.appUC.GetMyApplication(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", app)
}

// ListByJob godoc
// @Summary      List applications for a job
// @Tags         recruiter-applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.appUC.ListByJobID(c.Request.Context(), middleware.UserID(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", apps)
}

// Export streams the job's applications as an XLSX workbook.
func (h *ApplicationHandler) Export(c *gin.Context) {
	jobID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	data, err := h.appUC.ExportByJobID(c.Request.Context(), middleware.UserID(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="applications.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// AddCandidate godoc
// @Summary      Add a candidate to a job pipeline
// @Description  Recruiter-side application creation with a provenance source tag.
// @Tags         recruiter-applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Job ID"
// @Param        body  body      AddCandidateRequest  true  "Candidate and source"
// @Success      201   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs/{id}/applications [post]
func (h *ApplicationHandler) AddCandidate(c *gin.Context) {
	jobID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req AddCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	app, err := h.appUC.AddCandidate(c.Request.Context(), middleware.UserID(c), jobID, req.CandidateID, req.Source)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate added", app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	app, err := h.appUC.GetApplicationDetail(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", app)
}

// Update godoc
// @Summary      Patch an application
// @Description  Updates status, score, tags or notes. An empty patch is a no-op.
// @Tags         recruiter-applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Application ID"
// @Param        body  body      domain.ApplicationPatch  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/applications/{id} [patch]
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var p domain.ApplicationPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	app, err := h.appUC.UpdateApplication(c.Request.Context(), middleware.UserID(c), id, &p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}
