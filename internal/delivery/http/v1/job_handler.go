package v1

import (
	"context"
	"net/http"
	"strconv"

	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers the public job catalogue and the recruiter
// job management routes.
func NewJobHandler(public *gin.RouterGroup, recruiter *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs", handler.ListPublished)
	public.GET("/jobs/:id", handler.GetPublished)

	jobs := recruiter.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.GET("", handler.ListMine)
		jobs.GET("/:id", handler.Get)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.POST("/:id/publish", handler.Publish)
		jobs.POST("/:id/close", handler.Close)
		jobs.POST("/:id/reopen", handler.Reopen)
	}
}

type CreateJobRequest struct {
	Title            string               `json:"title" binding:"required"`
	Description      string               `json:"description"`
	Location         string               `json:"location"`
	JobType          string               `json:"job_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Remote           bool                 `json:"remote"`
	International    bool                 `json:"international"`
	SalaryMin        *float64             `json:"salary_min"`
	SalaryMax        *float64             `json:"salary_max"`
	Responsibilities []string             `json:"responsibilities"`
	Requirements     []string             `json:"requirements"`
	Qualifications   []string             `json:"qualifications"`
	SkillsRequired   []domain.SkillWeight `json:"skills_required"`
	SkillsPreferred  []domain.SkillWeight `json:"skills_preferred"`
	Status           string               `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
}

type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// ListPublished godoc
// @Summary      List published jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"      default(1)
// @Param        page_size  query     int  false  "Results per page"  default(20)
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) ListPublished(c *gin.Context) {
	page, pageSize := pagination(c)
	jobs, total, err := h.jobUC.ListPublishedJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", pagedResponse{Items: jobs, Total: total, Page: page, PageSize: pageSize})
}

// GetPublished godoc
// @Summary      Get a published job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetPublished(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetPublishedJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", job)
}

// Create godoc
// @Summary      Create a job posting
// @Description  Creates a job as DRAFT, or directly PUBLISHED when status says so.
// @Tags         recruiter-jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job data"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		JobType:          req.JobType,
		Remote:           req.Remote,
		International:    req.International,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Qualifications:   req.Qualifications,
		SkillsRequired:   req.SkillsRequired,
		SkillsPreferred:  req.SkillsPreferred,
		Status:           req.Status,
	}
	job, err := h.jobUC.CreateJob(c.Request.Context(), middleware.UserID(c), job)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	page, pageSize := pagination(c)
	jobs, total, err := h.jobUC.ListJobsByRecruiter(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", pagedResponse{Items: jobs, Total: total, Page: page, PageSize: pageSize})
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", job)
}

// Update godoc
// @Summary      Patch a job
// @Description  Partial update. Outside DRAFT only the status field is accepted.
// @Tags         recruiter-jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Job ID"
// @Param        body  body      domain.JobPatch  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var p domain.JobPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.UserID(c), id, &p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.UserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Publish godoc
// @Summary      Publish a job
// @Description  Moves DRAFT to PUBLISHED. Publishing an already published job is a no-op.
// @Tags         recruiter-jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/jobs/{id}/publish [post]
func (h *JobHandler) Publish(c *gin.Context) {
	h.transition(c, h.jobUC.Publish, "Job published")
}

func (h *JobHandler) Close(c *gin.Context) {
	h.transition(c, h.jobUC.Close, "Job closed")
}

func (h *JobHandler) Reopen(c *gin.Context) {
	h.transition(c, h.jobUC.Reopen, "Job reopened")
}

func (h *JobHandler) transition(c *gin.Context, fn func(ctx context.Context, recruiterID, id int64) (*domain.Job, error), msg string) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := fn(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msg, job)
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

// pagination reads page/page_size query params with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
