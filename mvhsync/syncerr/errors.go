package syncerr

import "errors"

var (
	// ErrListNotArray indicates the app list endpoint answered with a JSON value that is not an array.
	ErrListNotArray = errors.New("response from /apps is not an array")

	// ErrInvalidAppID indicates a listed app has no usable app_id (missing, empty, or not safe as a file name).
	ErrInvalidAppID = errors.New("invalid app_id")

	// ErrAppsFailed indicates at least one app could not be synced (only raised when the user asks to fail on it).
	ErrAppsFailed = NewExpectedErr("one or more apps failed to sync")
)
