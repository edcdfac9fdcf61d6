package handlers

import (
	"net/http"

	"careerbridge_backend/internal/middleware"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PaymentHandler - ручная верификация оплаты и выдача приглашений.
// Оба действия строго операторские.
type PaymentHandler struct {
	*BaseHandler
	invitationService services.InvitationService
}

func NewPaymentHandler(base *BaseHandler, invitationService services.InvitationService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:       base,
		invitationService: invitationService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("/payments/verify", h.VerifyPayment)
		admin.POST("/invitations", h.DirectInvite)
	}
}

// VerifyPayment фиксирует оплату и отправляет регистрационную ссылку.
// Повторный вызов для того же проспекта вернет ту же ссылку (resent=true).
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	operatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.invitationService.VerifyAndInvite(h.GetDB(c), operatorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if response.Resent {
		status = http.StatusOK
	}
	c.JSON(status, response)
}

// DirectInvite - приглашение без оплаченной консультации (короткий TTL)
func (h *PaymentHandler) DirectInvite(c *gin.Context) {
	operatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DirectInviteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.invitationService.DirectInvite(h.GetDB(c), operatorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
