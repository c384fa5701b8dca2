package domain

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTokenNotFound  = errors.New("device token not found")
)
