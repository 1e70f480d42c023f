package v1

import (
	"net/http"

	"go-unhired-backend/internal/delivery/http/response"
	"go-unhired-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	badgeUC domain.BadgeUsecase
}

// NewBadgeHandler registers badge routes
func NewBadgeHandler(r *gin.RouterGroup, badgeUC domain.BadgeUsecase) {
	handler := &BadgeHandler{badgeUC: badgeUC}

	r.GET("/badges", handler.GetMyBadges)
}

func (h *BadgeHandler) GetMyBadges(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	badges, err := h.badgeUC.GetUserBadges(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Badges retrieved", badges)
}
