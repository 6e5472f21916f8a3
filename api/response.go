package api

import (
	"errors"
	"log"
	"net/http"

	"polls-backend/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps core errors onto transport status codes:
// NotFound -> 404, validation rejections -> 400 with the reason,
// everything else -> 500 without leaking internals.
func writeServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPollNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrChoiceNotFound),
		errors.Is(err, service.ErrParticipantNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Reason})
			return
		}
		log.Printf("Internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// HealthCheck reports process liveness.
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
