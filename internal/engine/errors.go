package engine

import "fmt"

// ErrorKind buckets action rejections so the transport layer can map them to
// protocol-level responses without parsing message text.
type ErrorKind int

const (
	// KindValidation covers malformed input, such as a raise without an amount.
	KindValidation ErrorKind = iota
	// KindState covers actions that are illegal given whose turn it is or the
	// player's fold/all-in status.
	KindState
	// KindRule covers actions that violate betting rules, such as a raise
	// below the minimum or a bet the player cannot cover.
	KindRule
)

// Error is a recoverable action rejection. The message is short and
// human-readable; the transport relays it verbatim to the offending client.
// The engine state is unchanged and the same player may retry.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func stateErr(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func ruleErr(format string, args ...any) *Error {
	return &Error{Kind: KindRule, Message: fmt.Sprintf(format, args...)}
}
