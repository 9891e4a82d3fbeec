package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an application error class across the API
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1001
	ErrorCode_VALIDATION       ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1003
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1004
	ErrorCode_LIMIT_REACHED    ErrorCode = 1005
	ErrorCode_DIALOGUE_ENDED   ErrorCode = 1006
	ErrorCode_PROVIDER_FAILED  ErrorCode = 1007
	ErrorCode_SYNTHESIS_FAILED ErrorCode = 1008
)

// String returns the code's wire name
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_VALIDATION:
		return "VALIDATION"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_LIMIT_REACHED:
		return "LIMIT_REACHED"
	case ErrorCode_DIALOGUE_ENDED:
		return "DIALOGUE_ENDED"
	case ErrorCode_PROVIDER_FAILED:
		return "PROVIDER_FAILED"
	case ErrorCode_SYNTHESIS_FAILED:
		return "SYNTHESIS_FAILED"
	default:
		return "UNKNOWN"
	}
}

// AppError is the custom error type carried across the HTTP boundary
type AppError struct {
	Raw      error             `json:"-"`
	HTTPCode int               `json:"-"`
	Code     ErrorCode         `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error to errors.Is / errors.As
func (e AppError) Unwrap() error { return e.Raw }

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrValidationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  "Validation failed",
	}
}

// Dialogue lifecycle errors

func ErrDialogueNotFound(dialogueID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Dialogue not found",
	}.WithDetail("dialogue_id", dialogueID)
}

func ErrDialogueAlreadyExists(dialogueID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  "Dialogue already exists",
	}.WithDetail("dialogue_id", dialogueID)
}

func ErrDialogueEnded(dialogueID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_DIALOGUE_ENDED,
		Message:  "Dialogue has ended",
	}.WithDetail("dialogue_id", dialogueID)
}

func ErrRoomNotFound(roomID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Room not found",
	}.WithDetail("room_id", roomID)
}

func ErrRoomAlreadyExists(roomID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  "Room already exists",
	}.WithDetail("room_id", roomID)
}

func ErrMaxRoomsReached(dialogueID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_LIMIT_REACHED,
		Message:  "Dialogue reached its room limit",
	}.WithDetail("dialogue_id", dialogueID)
}

func ErrParticipantNotFound(participantID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Participant not found",
	}.WithDetail("participant_id", participantID)
}

// Synthesis and provider errors

func ErrSynthesisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_SYNTHESIS_FAILED,
		Message:  "Synthesis generation failed",
	}
}

func ErrSynthesisNotReady(dialogueID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "No synthesis has been generated yet",
	}.WithDetail("dialogue_id", dialogueID)
}

func ErrProviderFailed(provider string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_FAILED,
		Message:  "AI provider call failed",
	}.WithDetail("provider", provider)
}
