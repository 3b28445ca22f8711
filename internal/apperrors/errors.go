package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindDecode Kind = "decode"
	KindScan   Kind = "scan"
	KindConfig Kind = "config"
	KindState  Kind = "state"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output.
	SafeMessage string
	// Cause keeps the underlying error for logs and errors.Is matching.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := strings.TrimSpace(e.SafeMessage)
	switch {
	case msg != "" && e.Cause != nil:
		return msg + ": " + e.Cause.Error()
	case msg != "":
		return msg
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindDecode:
		return "image could not be decoded"
	case KindScan:
		return "image directory could not be scanned"
	case KindConfig:
		return "invalid configuration"
	case KindState:
		return "saved state could not be used"
	default:
		return "operation failed"
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Decode(err error) error {
	return New(KindDecode, "", err)
}

func Scan(err error) error {
	return New(KindScan, "", err)
}

func Config(err error) error {
	return New(KindConfig, "", err)
}

func State(err error) error {
	return New(KindState, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// PublicMessage returns the safe message of an application error, or the
// error text of any other error.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.SafeMessage
	}
	return err.Error()
}

// IsRecoverable reports whether the viewer can keep running after err.
// Decode and state errors only affect one slide or the resume position.
func IsRecoverable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindDecode || e.Kind == KindState
}
