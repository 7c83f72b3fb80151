// Package apierr normalizes every failed call to the auth API into one error
// shape and resolves a user-facing message for it.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// NetworkMessage is the message of every error where no response arrived.
// It is deliberately not translated.
const NetworkMessage = "Network error"

// Kind classifies where the failure happened.
type Kind int

const (
	// KindResponse: the server answered with a status >= 400.
	KindResponse Kind = iota
	// KindNetwork: the request was sent but no response was received.
	KindNetwork
	// KindConstruction: the request could not be built.
	KindConstruction
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindConstruction:
		return "construction"
	default:
		return "response"
	}
}

// Error is the normalized API error. Values are immutable once built.
type Error struct {
	StatusCode int
	// ErrorCode is the application-specific code, nil when the body had none.
	ErrorCode *int
	// Message is the primary message: the first element of OriginalMessage.
	Message string
	// OriginalMessage holds the server message; a single string is stored as
	// a one-element list.
	OriginalMessage []string
	Kind            Kind

	cause error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the application error code if the server sent one.
func (e *Error) Code() (int, bool) {
	if e.ErrorCode == nil {
		return 0, false
	}
	return *e.ErrorCode, true
}

// MarshalJSON writes the wire shape {statusCode, errorCode?, message, originalMessage}.
// originalMessage is a string when the server sent one message and a list otherwise.
func (e *Error) MarshalJSON() ([]byte, error) {
	var original any = e.OriginalMessage
	if len(e.OriginalMessage) == 1 {
		original = e.OriginalMessage[0]
	}
	return json.Marshal(struct {
		StatusCode      int    `json:"statusCode"`
		ErrorCode       *int   `json:"errorCode,omitempty"`
		Message         string `json:"message"`
		OriginalMessage any    `json:"originalMessage,omitempty"`
	}{e.StatusCode, e.ErrorCode, e.Message, original})
}

// errorBody is the error envelope of the auth API.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
	ErrorCode  *int            `json:"errorCode"`
}

// FromResponse builds an Error from an HTTP error response. The body's
// statusCode wins over the HTTP status when present; a body that is not the
// expected JSON envelope still yields an Error carrying the HTTP status.
func FromResponse(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Kind: KindResponse}

	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		if b.StatusCode != 0 {
			e.StatusCode = b.StatusCode
		}
		e.ErrorCode = b.ErrorCode
		e.OriginalMessage = decodeMessage(b.Message)
		if len(e.OriginalMessage) == 0 && b.Error != "" {
			e.OriginalMessage = []string{b.Error}
		}
	}

	if len(e.OriginalMessage) == 0 {
		text := strings.TrimSpace(string(body))
		if text == "" || !isPlainText(text) {
			text = http.StatusText(e.StatusCode)
		}
		e.OriginalMessage = []string{text}
	}
	e.Message = e.OriginalMessage[0]

	return e
}

// Network wraps a transport failure where no response was received.
func Network(cause error) *Error {
	return &Error{
		StatusCode:      0,
		Message:         NetworkMessage,
		OriginalMessage: []string{NetworkMessage},
		Kind:            KindNetwork,
		cause:           cause,
	}
}

// Construction wraps a failure to build the request.
func Construction(cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{
		StatusCode:      0,
		Message:         msg,
		OriginalMessage: []string{msg},
		Kind:            KindConstruction,
		cause:           cause,
	}
}

// MalformedMessage is the message of a success response whose body could
// not be decoded.
const MalformedMessage = "Malformed response"

// Malformed wraps a 2xx response whose body could not be decoded.
func Malformed(status int, cause error) *Error {
	return &Error{
		StatusCode:      status,
		Message:         MalformedMessage,
		OriginalMessage: []string{MalformedMessage},
		Kind:            KindResponse,
		cause:           cause,
	}
}

// StatusOf returns the status code of a normalized error anywhere in err's chain.
func StatusOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode, true
	}
	return 0, false
}

func decodeMessage(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list
	}

	return nil
}

// isPlainText rejects HTML error pages and other markup as a message.
func isPlainText(s string) bool {
	return len(s) <= 200 && !strings.ContainsAny(s, "<>{}")
}
