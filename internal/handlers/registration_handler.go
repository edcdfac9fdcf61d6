package handlers

import (
	"net/http"

	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	*BaseHandler
	registrationService services.RegistrationService
}

func NewRegistrationHandler(base *BaseHandler, registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:         base,
		registrationService: registrationService,
	}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Публичный: доступ контролирует сам одноразовый токен
	r.POST("/registration/complete", h.Complete)
}

func (h *RegistrationHandler) Complete(c *gin.Context) {
	var req dto.CompleteRegistrationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.registrationService.Complete(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
