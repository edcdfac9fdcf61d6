package handlers

import (
	"net/http"

	"careerbridge_backend/internal/middleware"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/services"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// isAdmin смотрит роль, положенную в контекст AuthMiddleware
func isAdmin(c *gin.Context) bool {
	roleVal, exists := c.Get("role")
	if !exists {
		return false
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return false
	}
	return models.UserRole(roleStr) == models.UserRoleAdmin
}

// ApplicationHandler - трекинг откликов клиента на вакансии.
// Создает и двигает статусы оператор, клиент видит свои отклики.
type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	client := r.Group("/applications")
	client.Use(middleware.AuthMiddleware())
	{
		client.GET("", h.ListOwn)
		client.GET("/:applicationId", h.Get)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("/clients/:clientId/applications", h.Create)
		admin.GET("/clients/:clientId/applications", h.ListByClient)
		admin.PATCH("/applications/:applicationId/status", h.UpdateStatus)
	}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.applicationService.Create(h.GetDB(c), c.Param("clientId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.applicationService.UpdateStatus(h.GetDB(c), c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.applicationService.Get(h.GetDB(c), c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Клиент видит только собственные отклики
	if !isAdmin(c) && response.UserID != userID {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.applicationService.ListByClient(h.GetDB(c), clientID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ApplicationHandler) ListByClient(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.applicationService.ListByClient(h.GetDB(c), c.Param("clientId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
