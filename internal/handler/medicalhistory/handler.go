package medicalhistory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisys/clinical-api/internal/handler"
	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/service/medicalhistory"
)

type Handler struct {
	service medicalhistory.MedicalHistoryService
}

func NewHandler(service medicalhistory.MedicalHistoryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	histories := r.Group("/medical-histories")
	{
		histories.POST("", h.CreateMedicalHistory)
		histories.GET("", h.ListMedicalHistories)
		histories.GET("/:id", h.GetMedicalHistory)
		histories.PUT("/:id", h.UpdateMedicalHistory)
		histories.DELETE("/:id", h.DeleteMedicalHistory)
	}
	r.GET("/patients/:id/medical-histories", h.ListMedicalHistoriesByPatient)
	r.GET("/patients/:id/medical-histories/active", h.ListActiveConditions)
}

func (h *Handler) CreateMedicalHistory(c *gin.Context) {
	var req model.CreateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListMedicalHistories(c *gin.Context) {
	histories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(histories))
}

func (h *Handler) GetMedicalHistory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	history, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) ListMedicalHistoriesByPatient(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	histories, err := h.service.GetByPatient(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(histories))
}

func (h *Handler) ListActiveConditions(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	histories, err := h.service.GetActiveConditions(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(histories))
}

func (h *Handler) UpdateMedicalHistory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteMedicalHistory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
