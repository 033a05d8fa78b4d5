package util

import "errors"

var (
	ErrTitleRequired    = errors.New("title must not be empty")
	ErrContentRequired  = errors.New("content must not be empty")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrPermissionDenied = errors.New("permission denied")
)
