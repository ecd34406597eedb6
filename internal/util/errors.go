package util

import "errors"

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidInput     = errors.New("invalid input")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrAlreadyAnswered  = errors.New("question already answered in this attempt")
	ErrAttemptCompleted = errors.New("attempt already completed")
	ErrAttemptBusy      = errors.New("attempt is being updated, please retry")
)
