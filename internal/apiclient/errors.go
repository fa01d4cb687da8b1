package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is a non-2xx answer from the shop API.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: upstream %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: upstream %d", e.Op, e.Status)
}

func newError(op string, status int, body []byte) *Error {
	return &Error{Op: op, Status: status, Message: messageFrom(body)}
}

// messageFrom pulls a human message out of an error body; the backend is not
// consistent between {"error": ...}, {"message": ...} and plain text.
func messageFrom(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "error.message"} {
			if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String {
				return r.String()
			}
		}
		return ""
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// StatusOf returns the upstream status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }
