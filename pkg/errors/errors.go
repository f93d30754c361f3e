package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Конвейер доски
	ErrSourceUnavailable = fmt.Errorf("таблица недоступна")
	ErrStoreOperational  = fmt.Errorf("ошибка хранилища истории")
	ErrStoreInit         = fmt.Errorf("хранилище истории не инициализировано")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// Коды видов ошибок для доски и ответов API.
const (
	KindSourceUnavailable = "source_unavailable"
	KindStoreOperational  = "store_operational"
	KindStoreInit         = "store_init"
	KindInternal          = "internal"
)

// PipelineError - типизированная ошибка конвейера. Kind - одна из sentinel-ошибок выше,
// поэтому errors.Is(err, ErrSourceUnavailable) работает и через обертки.
type PipelineError struct {
	Kind    error
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NewSourceUnavailable(message string, err error) error {
	return &PipelineError{Kind: ErrSourceUnavailable, Message: message, Err: err}
}

func NewStoreOperational(message string, err error) error {
	return &PipelineError{Kind: ErrStoreOperational, Message: message, Err: err}
}

func NewStoreInit(message string, err error) error {
	return &PipelineError{Kind: ErrStoreInit, Message: message, Err: err}
}

// KindOf возвращает код вида ошибки для передачи на доску.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrStoreOperational):
		return KindStoreOperational
	case errors.Is(err, ErrStoreInit):
		return KindStoreInit
	default:
		return KindInternal
	}
}

// HttpError - ошибка с HTTP-кодом для контроллеров.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusCodeOf подбирает HTTP-код по виду ошибки.
func StatusCodeOf(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrSourceUnavailable), errors.Is(err, ErrStoreInit):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage - текст для экрана доски: сообщение PipelineError и исходная причина.
func UserMessage(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		if pe.Err != nil {
			return fmt.Sprintf("%s\nErro: %v", pe.Message, pe.Err)
		}
		return pe.Message
	}
	return err.Error()
}
