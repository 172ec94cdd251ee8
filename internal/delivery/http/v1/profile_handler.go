package v1

import (
	"net/http"

	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(candidate *gin.RouterGroup, recruiter *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	candidate.GET("/profile", handler.GetCandidate)
	candidate.PUT("/profile", handler.UpdateCandidate)
	recruiter.GET("/profile", handler.GetRecruiter)
	recruiter.PUT("/profile", handler.UpdateRecruiter)
}

type CandidateProfileRequest struct {
	Headline   string                   `json:"headline"`
	Summary    string                   `json:"summary"`
	Education  []domain.EducationEntry  `json:"education"`
	Experience []domain.ExperienceEntry `json:"experience"`
}

type RecruiterProfileRequest struct {
	Company  string `json:"company" binding:"required"`
	Position string `json:"position"`
	About    string `json:"about"`
}

// GetCandidate godoc
// @Summary      Get my candidate profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/profile [get]
func (h *ProfileHandler) GetCandidate(c *gin.Context) {
	profile, err := h.profileUC.GetCandidateProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

// UpdateCandidate upserts the caller's candidate profile.
func (h *ProfileHandler) UpdateCandidate(c *gin.Context) {
	var req CandidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CandidateProfile{
		UserID:     middleware.UserID(c),
		Headline:   req.Headline,
		Summary:    req.Summary,
		Education:  req.Education,
		Experience: req.Experience,
	}
	profile, err := h.profileUC.UpdateCandidateProfile(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

func (h *ProfileHandler) GetRecruiter(c *gin.Context) {
	profile, err := h.profileUC.GetRecruiterProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

func (h *ProfileHandler) UpdateRecruiter(c *gin.Context) {
	var req RecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.RecruiterProfile{
		UserID:   middleware.UserID(c),
		Company:  req.Company,
		Position: req.Position,
		About:    req.About,
	}
	profile, err := h.profileUC.UpdateRecruiterProfile(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}
