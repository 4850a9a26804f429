package handlers

import (
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	BaseHandler
	promotionService services.PromotionService
}

func NewPromotionHandler(promotionService services.PromotionService, logger utils.Logger) *PromotionHandler {
	return &PromotionHandler{
		BaseHandler:      NewBaseHandler(logger),
		promotionService: promotionService,
	}
}

// RunPromotion advances the whole roster one academic year
// @Summary Run promotion
// @Description Advances every classroom to the next grade level; irreversible
// @Tags promotions
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.PromotionSummary}
// @Failure 500 {object} ErrorResponse
// @Router /promotions [post]
func (h *PromotionHandler) RunPromotion(c *gin.Context) {
	h.LogRequest(c, "Running end-of-year promotion")

	summary, err := h.promotionService.Run(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Promotion completed",
		Data:    summary,
	})
}
