package v1

import (
	"net/http"

	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifUC domain.NotificationUsecase
}

func NewNotificationHandler(protected *gin.RouterGroup, notifUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notifUC: notifUC}

	notifications := protected.Group("/users/notifications")
	{
		notifications.GET("", handler.List)
		notifications.POST("/:id/read", handler.MarkRead)
		notifications.POST("/read-all", handler.MarkAllRead)
	}
}

// List godoc
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        page       query     int  false  "Page number"      default(1)
// @Param        page_size  query     int  false  "Results per page"  default(20)
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	items, total, err := h.notifUC.ListMyNotifications(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Description  Idempotent. Marking an already read notification keeps its original read timestamp.
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	n, err := h.notifUC.MarkRead(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked read", n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifUC.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications marked read", nil)
}
