package usecase

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrForbidden            = errors.New("actor is not allowed to perform this action")
	ErrInviteNotPending     = errors.New("invite is not pending")
	ErrInviteExpired        = errors.New("invite has expired")
	ErrInviteEmailMismatch  = errors.New("invite was issued for a different email")
	ErrOwnerCannotBeDemoted = errors.New("organization owner role cannot be changed")
	ErrOwnerCannotBeRemoved = errors.New("organization owner cannot be removed")
)
