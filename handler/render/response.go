package render

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// ResponseErrorMessageAsHint moves internal error messages into the hint
// field so clients show only the code.
var ResponseErrorMessageAsHint bool

func init() {
	v := os.Getenv("RESPONSE_ERROR_MESSAGE_AS_HINT")
	ResponseErrorMessageAsHint, _ = strconv.ParseBool(v)
}

type wrapResponse struct {
	status int
	header http.Header
	buf    *bytes.Buffer
}

func (w *wrapResponse) Header() http.Header {
	return w.header
}

func (w *wrapResponse) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *wrapResponse) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *wrapResponse) isJsonContent() bool {
	typ := w.header.Get("Content-Type")
	return strings.HasPrefix(typ, "application/json")
}

type dataResponse struct {
	Data json.RawMessage `json:"data,omitempty"`
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Hint string `json:"hint,omitempty"`
}

// WrapResponse wraps successful json payloads in a data envelope. Error
// payloads pass through, optionally with the message demoted to a hint.
func WrapResponse(wrap bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !wrap {
				next.ServeHTTP(w, r)
				return
			}

			wrapper := &wrapResponse{
				status: http.StatusOK,
				header: w.Header(),
				buf:    &bytes.Buffer{},
			}

			next.ServeHTTP(wrapper, r)

			body := wrapper.buf.Bytes()
			if wrapper.isJsonContent() {
				if wrapper.status >= http.StatusOK && wrapper.status < http.StatusMultipleChoices {
					if wrapped, err := json.Marshal(dataResponse{Data: body}); err == nil {
						body = wrapped
					}
				} else if ResponseErrorMessageAsHint {
					var er errorResponse
					if err := json.Unmarshal(body, &er); err == nil {
						er.Hint = er.Msg
						er.Msg = http.StatusText(wrapper.status)
						if remarshaled, err := json.Marshal(er); err == nil {
							body = remarshaled
						}
					}
				}
			}

			w.WriteHeader(wrapper.status)
			_, _ = w.Write(body)
		}

		return http.HandlerFunc(fn)
	}
}
