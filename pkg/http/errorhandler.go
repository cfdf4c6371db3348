package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-web-auth/pkg/apperror"
	"github.com/klwxsrx/go-web-auth/pkg/auth"
	"github.com/klwxsrx/go-web-auth/pkg/log"
	"github.com/klwxsrx/go-web-auth/pkg/observability"
)

const unknownErrorMessage = "Internal Server Error"

type (
	ErrorHandler interface {
		Handle(w http.ResponseWriter, r *http.Request, err error)
	}

	ErrorHandlerOption func(*errorHandler)

	errorHandler struct {
		logger     log.Logger
		observer   observability.Observer
		production bool
		mapping    map[apperror.Kind][]error
		now        func() time.Time
	}

	errorResponse struct {
		Error errorPayload `json:"error"`
	}

	errorPayload struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
		Timestamp string `json:"timestamp"`
		Stack     string `json:"stack,omitempty"`
		Details   string `json:"details,omitempty"`
	}
)

func NewErrorHandler(
	logger log.Logger,
	observer observability.Observer,
	production bool,
	opts ...ErrorHandlerOption,
) ErrorHandler {
	h := &errorHandler{
		logger:     logger,
		observer:   observer,
		production: production,
		mapping: map[apperror.Kind][]error{
			apperror.KindValidation:     {ErrParsingError},
			apperror.KindAuthentication: {auth.ErrUnauthenticated},
			apperror.KindAuthorization:  {auth.ErrPermissionDenied},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// WithErrorMapping classifies errors matching any of errs with errors.Is as kind.
func WithErrorMapping(kind apperror.Kind, errs ...error) ErrorHandlerOption {
	return func(h *errorHandler) {
		h.mapping[kind] = append(h.mapping[kind], errs...)
	}
}

func WithErrorHandlerClock(now func() time.Time) ErrorHandlerOption {
	return func(h *errorHandler) {
		h.now = now
	}
}

func (h *errorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	appErr := h.classify(err)
	statusCode := appErr.Status()
	payload := errorPayload{
		Code:      appErr.Code(),
		Message:   h.publicMessage(appErr, statusCode),
		RequestID: h.requestID(r),
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	}
	if !h.production {
		payload.Stack = string(appErr.Stack)
		payload.Details = err.Error()
	}

	h.log(r, appErr, err, payload)

	var body []byte
	var contentType string
	if acceptsJSON(r) {
		body, err = json.Marshal(errorResponse{Error: payload})
		contentType = contentTypeJSON
	} else {
		body, err = renderErrorPage(errorPage{
			StatusCode: statusCode,
			Title:      http.StatusText(statusCode),
			Payload:    payload,
			ShowDetail: !h.production,
		})
		contentType = contentTypeHTML
	}
	if err != nil {
		h.logger.WithError(err).Error(r.Context(), "failed to encode error response")
		body = []byte(unknownErrorMessage)
		contentType = "text/plain; charset=utf-8"
	}

	w.Header().Set(contentTypeHeader, contentType)
	w.WriteHeader(statusCode)
	_, err = w.Write(body)
	if err != nil {
		h.logger.WithError(err).Warn(r.Context(), "failed to write error response")
	}
}

func (h *errorHandler) classify(err error) *apperror.Error {
	if appErr, ok := apperror.As(err); ok {
		if appErr.Kind == apperror.KindUnknown && len(appErr.Stack) == 0 {
			appErr.Stack = debug.Stack()
		}
		return appErr
	}

	for kind, errs := range h.mapping {
		for _, expected := range errs {
			if errors.Is(err, expected) {
				return &apperror.Error{Kind: kind, Message: expected.Error(), Err: err}
			}
		}
	}

	return &apperror.Error{Kind: apperror.KindUnknown, Err: err, Stack: debug.Stack()}
}

func (h *errorHandler) publicMessage(appErr *apperror.Error, statusCode int) string {
	switch {
	case !appErr.Operational():
		return unknownErrorMessage
	case appErr.Message == "":
		return http.StatusText(statusCode)
	default:
		return appErr.Message
	}
}

func (h *errorHandler) requestID(r *http.Request) string {
	if h.observer != nil {
		if id, ok := h.observer.RequestID(r.Context()); ok {
			return id
		}
	}

	return uuid.NewString()
}

func (h *errorHandler) log(r *http.Request, appErr *apperror.Error, err error, payload errorPayload) {
	logger := h.logger.With(log.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"userAgent":  r.UserAgent(),
		"requestId":  payload.RequestID,
		"timestamp":  payload.Timestamp,
		"statusCode": appErr.Status(),
		"code":       payload.Code,
	}).WithError(err)

	switch {
	case appErr.Kind == apperror.KindNotFound:
		logger.Info(r.Context(), "request failed")
	case appErr.Operational():
		logger.Warn(r.Context(), "request failed")
	default:
		logger.WithField("stack", string(appErr.Stack)).Error(r.Context(), "request failed with unexpected error")
	}
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), contentTypeJSON)
}

func renderErrorPage(page errorPage) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := errorPageTemplate.Execute(buf, page)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
