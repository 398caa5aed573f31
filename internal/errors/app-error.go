package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// NotFound signals an unknown id for any entity.
func NotFound(msg, field string) *AppError {
	return NewAppError(http.StatusNotFound, msg, field)
}

// NotAnAttendee signals an RSVP attempted by an employee outside the
// meeting's attendee set.
func NotAnAttendee(field string) *AppError {
	return NewAppError(http.StatusForbidden, "employee is not an attendee of this meeting", field)
}

// NotAParticipant signals a message-send or read attempted by an employee
// outside the conversation's participant set.
func NotAParticipant(field string) *AppError {
	return NewAppError(http.StatusForbidden, "employee is not a participant of this conversation", field)
}

// InvalidEnum signals an unparseable status/response string. Parsing never
// falls back to a default value.
func InvalidEnum(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

// Conflict signals a state-machine violation, e.g. responding to a
// cancelled meeting.
func Conflict(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, msg, field)
}

func BadRequest(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func Internal(msg, field string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, field)
}
