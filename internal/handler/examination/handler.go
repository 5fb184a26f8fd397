package examination

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisys/clinical-api/internal/handler"
	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/service/examination"
)

type Handler struct {
	service examination.ExaminationService
}

func NewHandler(service examination.ExaminationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	examinations := r.Group("/examinations")
	{
		examinations.POST("", h.CreateExamination)
		examinations.GET("", h.ListExaminations)
		examinations.GET("/:id", h.GetExamination)
		examinations.GET("/:id/details", h.GetExaminationDetails)
		examinations.PUT("/:id", h.UpdateExamination)
		examinations.DELETE("/:id", h.DeleteExamination)
	}
	r.GET("/patients/:id/examinations", h.ListExaminationsByPatient)
	r.GET("/doctors/:id/examinations", h.ListExaminationsByDoctor)
}

func (h *Handler) CreateExamination(c *gin.Context) {
	var req model.CreateExaminationRequest
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

func (h *Handler) ListExaminations(c *gin.Context) {
	exams, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func (h *Handler) GetExamination(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	exam, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exam))
}

func (h *Handler) GetExaminationDetails(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	exam, err := h.service.GetWithDetails(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exam))
}

func (h *Handler) ListExaminationsByPatient(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	exams, err := h.service.GetByPatient(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func (h *Handler) ListExaminationsByDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	exams, err := h.service.GetByDoctor(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func (h *Handler) UpdateExamination(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateExaminationRequest
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

func (h *Handler) DeleteExamination(c *gin.Context) {
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
