package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid auth token")

	ErrCodeNotFound    = errors.New("premium code not found")
	ErrCodeAlreadyUsed = errors.New("premium code already used")
	ErrCodeExpired     = errors.New("premium code expired")
	ErrAlreadyPremium  = errors.New("user already has active premium")

	ErrInsufficientCoins = errors.New("not enough coins")
	ErrUnknownItem       = errors.New("unknown store item")
	ErrNoFreezeTokens    = errors.New("no streak freeze tokens left")

	ErrNoteNotFound = errors.New("note doesn't exists")
	ErrWrongOwner   = errors.New("resource has different owner")
)
