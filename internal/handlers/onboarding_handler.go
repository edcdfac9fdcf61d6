package handlers

import (
	"net/http"

	"careerbridge_backend/internal/middleware"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Клиент работает только со своей анкетой
	client := r.Group("/onboarding")
	client.Use(middleware.AuthMiddleware())
	{
		client.POST("", h.Submit)
		client.GET("", h.GetOwn)
	}

	// Оператор апрувит/паузит/отклоняет анкету конкретного клиента
	admin := r.Group("/admin/onboarding")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.GET("/:clientId", h.Get)
		admin.POST("/:clientId/approve", h.Approve)
		admin.POST("/:clientId/pause", h.Pause)
		admin.POST("/:clientId/reject", h.Reject)
	}
}

// Submit - отправка (или повторная отправка) анкеты клиентом
func (h *OnboardingHandler) Submit(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.onboardingService.Submit(h.GetDB(c), clientID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) GetOwn(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.onboardingService.Get(h.GetDB(c), clientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	response, err := h.onboardingService.Get(h.GetDB(c), c.Param("clientId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) Approve(c *gin.Context) {
	operatorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApproveOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.onboardingService.Approve(h.GetDB(c), c.Param("clientId"), operatorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) Pause(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.PauseOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.onboardingService.Pause(h.GetDB(c), c.Param("clientId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) Reject(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.RejectOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.onboardingService.Reject(h.GetDB(c), c.Param("clientId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *OnboardingHandler) ListPending(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.onboardingService.ListPending(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
