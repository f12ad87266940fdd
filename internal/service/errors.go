package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect mobile number or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUnknownUser        = errors.New("unknown user")
	ErrPasswordRequired   = errors.New("password is required")
)
