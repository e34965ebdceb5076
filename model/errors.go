package model

import "errors"

var (
	ErrParticipantDoesNotExist = errors.New("participant do not exist")
	ErrGroupDoesNotExist       = errors.New("group do not exist")
	ErrMissingSender           = errors.New("request has no sender id")
)
