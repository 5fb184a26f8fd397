package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// WriteError maps an application error kind to an HTTP status. Storage
// failures are logged with their cause but the response carries no internal
// detail.
func WriteError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case apperr.KindUnimplemented:
		c.JSON(http.StatusNotImplemented, NewErrorResponse(err.Error()))
	case apperr.KindUnavailable:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage unavailable"))
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal error"))
	}
}

// ParseID reads a positive integer path parameter. A malformed value writes
// the 400 response and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}
