package types

import "errors"

// AssertionError is the typed fault an assertion helper produces when an
// expected-vs-actual check does not hold. The runner reports it as a
// failure; any other error or panic escaping a leaf body is an error.
// Diagnostic carries free-form backtrace text from which a source
// location may be recovered.
type AssertionError struct {
	Msg        string
	Diagnostic string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

// NewAssertionError builds an assertion fault with optional diagnostic text.
func NewAssertionError(msg, diagnostic string) *AssertionError {
	return &AssertionError{Msg: msg, Diagnostic: diagnostic}
}

// AsAssertionError unwraps err down to an AssertionError, if any.
func AsAssertionError(err error) (*AssertionError, bool) {
	var ae *AssertionError
	if err != nil && errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
