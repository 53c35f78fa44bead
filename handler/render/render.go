package render

import (
	"encoding/json"
	"net/http"

	"github.com/twitchtv/twirp"

	"lever/handler/codes"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(t))
}

// Error writes an error response. Twirp errors keep their mapped http
// status and api code; anything else renders as an internal error.
func Error(w http.ResponseWriter, err error) {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr, _ = codes.From(err).(twirp.Error)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	enc := json.NewEncoder(w)
	_ = enc.Encode(H{"code": codes.Get(twerr), "msg": twerr.Msg()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
