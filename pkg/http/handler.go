package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeHeader = "Content-Type"

	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

type Handler interface {
	Method() string
	Path() string
	Handle(w ResponseWriter, r *http.Request) error
}

// ResponseWriter collects the response, nothing is sent until the handler returns without error.
type ResponseWriter interface {
	SetHeader(key, value string) ResponseWriter
	SetStatusCode(httpCode int) ResponseWriter
	SetCookie(cookie *http.Cookie) ResponseWriter
	SetJSONBody(data any) ResponseWriter
	SetHTMLBody(body []byte) ResponseWriter
	Redirect(url string) ResponseWriter
}

type responseWriter struct {
	header   http.Header
	cookies  []*http.Cookie
	httpCode int

	encodeBodyFunc func() ([]byte, error)
}

func newResponseWriter() *responseWriter {
	return &responseWriter{
		header:   http.Header{},
		httpCode: http.StatusOK,
	}
}

func (w *responseWriter) SetHeader(key, value string) ResponseWriter {
	w.header.Set(key, value)
	return w
}

func (w *responseWriter) SetStatusCode(httpCode int) ResponseWriter {
	w.httpCode = httpCode
	return w
}

func (w *responseWriter) SetCookie(cookie *http.Cookie) ResponseWriter {
	w.cookies = append(w.cookies, cookie)
	return w
}

func (w *responseWriter) SetJSONBody(data any) ResponseWriter {
	w.header.Set(contentTypeHeader, contentTypeJSON)
	w.encodeBodyFunc = func() ([]byte, error) {
		body, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		return body, nil
	}
	return w
}

func (w *responseWriter) SetHTMLBody(body []byte) ResponseWriter {
	w.header.Set(contentTypeHeader, contentTypeHTML)
	w.encodeBodyFunc = func() ([]byte, error) {
		return body, nil
	}
	return w
}

func (w *responseWriter) Redirect(url string) ResponseWriter {
	w.header.Set("Location", url)
	w.httpCode = http.StatusFound
	w.encodeBodyFunc = nil
	return w
}

func (w *responseWriter) write(impl http.ResponseWriter, r *http.Request) {
	var body []byte
	if w.encodeBodyFunc != nil {
		var err error
		body, err = w.encodeBodyFunc()
		if err != nil {
			handleError(impl, r, err)
			return
		}
	}

	overridden := make(map[string]struct{}, len(w.cookies))
	for _, cookie := range w.cookies {
		overridden[cookie.Name] = struct{}{}
	}
	writePendingCookies(impl, r, overridden)
	for _, cookie := range w.cookies {
		http.SetCookie(impl, cookie)
	}

	for key, values := range w.header {
		for _, value := range values {
			impl.Header().Add(key, value)
		}
	}

	impl.WriteHeader(w.httpCode)
	if len(body) > 0 {
		_, _ = impl.Write(body)
	}
}

func httpHandlerWrapper(handler Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respWriter := newResponseWriter()
		err := handler.Handle(respWriter, r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respWriter.write(w, r)
	}
}
