package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPricesNotReady means the price table has not been loaded (yet).
	ErrPricesNotReady = errors.New("price data not loaded yet, retry in a moment")
	// ErrNoQuote means an export was requested before any quote was calculated.
	ErrNoQuote = errors.New("calculate a quote first")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// ClipboardError reports a failed clipboard write. The quote text is still usable.
type ClipboardError struct {
	Err error
}

func (e ClipboardError) Error() string {
	if e.Err == nil {
		return "clipboard unavailable"
	}
	return fmt.Sprintf("clipboard unavailable: %v", e.Err)
}

func (e ClipboardError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsClipboard(err error) bool {
	var target ClipboardError
	return errors.As(err, &target)
}

func IsPricesNotReady(err error) bool {
	return errors.Is(err, ErrPricesNotReady)
}

func IsNoQuote(err error) bool {
	return errors.Is(err, ErrNoQuote)
}
