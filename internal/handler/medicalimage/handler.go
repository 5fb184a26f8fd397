package medicalimage

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisys/clinical-api/internal/handler"
	"github.com/medisys/clinical-api/internal/service/medicalimage"
)

// maxUploadBytes caps a single image upload at 32 MiB.
const maxUploadBytes = 32 << 20

type Handler struct {
	service medicalimage.MedicalImageService
}

func NewHandler(service medicalimage.MedicalImageService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	images := r.Group("/medical-images")
	{
		images.GET("", h.ListMedicalImages)
		images.GET("/:id", h.GetMedicalImage)
		images.GET("/:id/file", h.DownloadMedicalImage)
		images.DELETE("/:id", h.DeleteMedicalImage)
	}
	r.POST("/examinations/:id/images", h.UploadMedicalImage)
	r.GET("/examinations/:id/images", h.ListMedicalImagesByExamination)
}

func (h *Handler) ListMedicalImages(c *gin.Context) {
	images, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(images))
}

func (h *Handler) GetMedicalImage(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	image, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(image))
}

func (h *Handler) ListMedicalImagesByExamination(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	images, err := h.service.GetByExamination(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(images))
}

func (h *Handler) UploadMedicalImage(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file form field is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file exceeds the upload size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}

	image, err := h.service.Upload(c.Request.Context(), id, data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(image))
}

func (h *Handler) DownloadMedicalImage(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	image, data, err := h.service.File(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+image.FileName+`"`)
	c.Data(http.StatusOK, image.FileType, data)
}

func (h *Handler) DeleteMedicalImage(c *gin.Context) {
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
