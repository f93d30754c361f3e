package utils

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "production-board/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	var response *HttpResponse = &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(
		code,
		response,
	)
}

// ErrorResponse отдает ошибку в общем формате и логирует ее.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCodeOf(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
	}

	if logger != nil {
		logger.Error("Ошибка обработки запроса",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Int("code", code),
			zap.Error(err),
		)
	}

	var response *HttpResponse = &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}

	return ctx.JSON(
		code,
		response,
	)
}
