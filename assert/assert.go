// Package assert includes some helper methods used for testing
package assert

import (
	"errors"
	"testing"
)

// Errors checks the validity of the expected error and returns false if no more assertions
// should be made on the result (either an error was expected or the assertion failed)
func Errors(t *testing.T, expectError bool, err error, fields Fields) bool {
	t.Helper()

	if expectError && err == nil {
		t.Errorf("Expected an error, but received 'nil' (%s)", fields.String())
	}

	if !expectError && err != nil {
		t.Errorf("No error was expected, but received '%v' (%s)", err, fields.String())
	}

	return !expectError
}

// ErrorIs fails the test if err is not, and does not wrap, the expected error.
// A nil expected error asserts that no error has been returned.
func ErrorIs(t *testing.T, expected, err error, fields Fields) bool {
	t.Helper()

	if expected == nil {
		return Errors(t, false, err, fields)
	}
	if !errors.Is(err, expected) {
		t.Errorf("Expected '%v' as error, but received '%v' (%s)", expected, err, fields.String())
		return false
	}
	return true
}
