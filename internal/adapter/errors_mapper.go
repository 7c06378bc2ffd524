package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}

// mapHTTPError returns nil for 2xx responses and a [*ResponseError] otherwise.
// A JSON object body is read as field validation messages, a JSON array as a
// list of messages, anything else as plain text.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	kind, ok := statusErrors[resp.StatusCode()]
	if !ok {
		kind = ErrUnexpectedStatus
	}
	respErr := &ResponseError{StatusCode: resp.StatusCode(), kind: kind}

	body := strings.TrimSpace(string(resp.Body()))
	switch {
	case body == "":
	case strings.HasPrefix(body, "{") && json.Unmarshal([]byte(body), &respErr.Fields) == nil:
	case strings.HasPrefix(body, "[") && json.Unmarshal([]byte(body), &respErr.Messages) == nil:
	default:
		respErr.Fields = nil
		respErr.Messages = []string{body}
	}

	return respErr
}
