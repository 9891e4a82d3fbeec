package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)

// Dialogue errors
var (
	ErrDialogueNotFound      = errors.New("dialogue not found")
	ErrDialogueAlreadyExists = errors.New("dialogue already exists")
	ErrDialogueEnded         = errors.New("dialogue has ended")
	ErrMaxRoomsReached       = errors.New("dialogue reached its room limit")
)

// Room errors
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists in dialogue")
	ErrRoomClosed        = errors.New("room is closed")
)

// Participant errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNoActiveSession     = errors.New("participant has no active session")
)
