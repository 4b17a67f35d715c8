package util

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSession     = errors.New("session is closed or does not belong to caller")
	ErrQuestionNotFound   = errors.New("question not found in lesson bank")
	ErrNoWeakQuestions    = errors.New("no weak questions for this lesson")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidMode        = errors.New("unknown practice mode")
)
