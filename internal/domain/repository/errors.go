package repository

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrAlreadyMember = errors.New("user is already a member")
	ErrInvalidCursor = errors.New("invalid cursor")
)
