package service

import "errors"

// ErrUsernameTaken covers both the pre-insert lookup hit and a uniqueness
// violation surfaced by the insert itself; callers cannot tell the two apart.
var ErrUsernameTaken = errors.New("username is already taken")

// ErrInvalidCredentials covers both an unknown username and a password
// mismatch, so responses never reveal whether a username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")
