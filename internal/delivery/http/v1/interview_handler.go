package v1

import (
	"net/http"
	"time"

	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	ivUC domain.InterviewUsecase
}

func NewInterviewHandler(recruiter *gin.RouterGroup, ivUC domain.InterviewUsecase) {
	handler := &InterviewHandler{ivUC: ivUC}

	recruiter.POST("/applications/:id/interviews", handler.Schedule)
	recruiter.GET("/applications/:id/interviews", handler.ListByApplication)
	recruiter.PATCH("/interviews/:id", handler.Update)
}

type ScheduleInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Creates a SCHEDULED interview on an application and notifies the candidate.
// @Tags         recruiter-interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      ScheduleInterviewRequest  true  "Interview data"
// @Success      201   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/applications/{id}/interviews [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	appID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	iv := &domain.Interview{
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	}
	iv, err = h.ivUC.Schedule(c.Request.Context(), middleware.UserID(c), appID, iv)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled", iv)
}

func (h *InterviewHandler) ListByApplication(c *gin.Context) {
	appID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	interviews, err := h.ivUC.ListByApplication(c.Request.Context(), middleware.UserID(c), appID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", interviews)
}

// Update godoc
// @Summary      Patch an interview
// @Description  Reschedule, change status, or record feedback and a 0-5 rating.
// @Tags         recruiter-interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Interview ID"
// @Param        body  body      domain.InterviewPatch  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Security     BearerAuth
// @Router       /recruiters/interviews/{id} [patch]
func (h *InterviewHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var p domain.InterviewPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	iv, err := h.ivUC.UpdateInterview(c.Request.Context(), middleware.UserID(c), id, &p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated", iv)
}
