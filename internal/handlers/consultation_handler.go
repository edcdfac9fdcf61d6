package handlers

import (
	"net/http"

	"careerbridge_backend/internal/middleware"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	*BaseHandler
	consultationService services.ConsultationService
	rateLimiter         gin.HandlerFunc
}

func NewConsultationHandler(
	base *BaseHandler,
	consultationService services.ConsultationService,
	rateLimiter gin.HandlerFunc,
) *ConsultationHandler {
	return &ConsultationHandler{
		BaseHandler:         base,
		consultationService: consultationService,
		rateLimiter:         rateLimiter,
	}
}

func (h *ConsultationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Публичный submit - единственный анонимный write-эндпоинт,
	// поэтому единственный с rate limit
	public := r.Group("/consultations")
	{
		public.POST("", h.rateLimiter, h.Submit)
	}

	// Операторские действия над заявками
	admin := r.Group("/admin/consultations")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.List)
		admin.GET("/:consultationId", h.Get)
		admin.POST("/:consultationId/confirm", h.Confirm)
		admin.POST("/:consultationId/reject", h.Reject)
		admin.POST("/:consultationId/reschedule", h.Reschedule)
	}
}

// Submit - публичная отправка заявки проспектом
func (h *ConsultationHandler) Submit(c *gin.Context) {
	var req dto.SubmitConsultationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.consultationService.Submit(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ConsultationHandler) Confirm(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ConfirmConsultationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.consultationService.Confirm(h.GetDB(c), c.Param("consultationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConsultationHandler) Reject(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.RejectConsultationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.consultationService.Reject(h.GetDB(c), c.Param("consultationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConsultationHandler) Reschedule(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.RescheduleConsultationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.consultationService.Reschedule(h.GetDB(c), c.Param("consultationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	response, err := h.consultationService.Get(h.GetDB(c), c.Param("consultationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConsultationHandler) List(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var criteria dto.ConsultationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	response, err := h.consultationService.List(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
