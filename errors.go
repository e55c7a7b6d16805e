package registrykit

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrAlreadyInitialized is returned when Initialize runs on a registry that already has an admin marker.
	ErrAlreadyInitialized = errors.New("registrykit: already initialized")

	// ErrUnauthorized is returned when the caller's role or ownership does not allow the operation.
	ErrUnauthorized = errors.New("registrykit: insufficient permissions")

	// ErrNotFound is returned when a referenced entity ID has no record.
	ErrNotFound = errors.New("registrykit: entity not found")

	// ErrUnauthenticated is returned when the authenticator rejects the acting address.
	ErrUnauthenticated = errors.New("registrykit: unauthenticated")

	// ErrInvalidInput is returned when an operation argument is malformed (e.g. an empty address).
	ErrInvalidInput = errors.New("registrykit: invalid input")

	// ErrInvalidSymbol is returned when a key symbol is empty, too long, or has characters outside [A-Za-z0-9_].
	ErrInvalidSymbol = errors.New("registrykit: invalid symbol")

	// ErrInvalidRole is returned when a role value or name is not one of the four known roles.
	ErrInvalidRole = errors.New("registrykit: invalid role")

	// ErrIDExhausted is returned when the entity ID counter cannot be advanced any further.
	ErrIDExhausted = errors.New("registrykit: entity id space exhausted")

	// ErrStorage is returned when the backing store fails.
	ErrStorage = errors.New("registrykit: storage error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err      error   // Underlying sentinel error
	Message  string  // Additional context
	EntityID uint32  // Entity involved (if applicable)
	Caller   Address // Caller that triggered the error (if applicable)
	Role     Role    // Role required (if applicable)
	Key      Symbol  // Attribute or config key (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithEntity adds entity information to the error.
func (e *Error) WithEntity(id uint32) *Error {
	e.EntityID = id
	return e
}

// WithCaller adds caller information to the error.
func (e *Error) WithCaller(caller Address) *Error {
	e.Caller = caller
	return e
}

// WithRole adds the required role to the error.
func (e *Error) WithRole(role Role) *Error {
	e.Role = role
	return e
}

// WithKey adds key information to the error.
func (e *Error) WithKey(key Symbol) *Error {
	e.Key = key
	return e
}

// IsUnauthorized checks if an error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if an error is due to an unknown entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyInitialized checks if an error is due to a repeated Initialize.
func IsAlreadyInitialized(err error) bool {
	return errors.Is(err, ErrAlreadyInitialized)
}

// storageError wraps a backend failure so callers can match ErrStorage while
// keeping the original error in the chain.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// IsUnauthenticated checks if an error is due to a rejected caller identity.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsInvalidInput checks if an error is due to a malformed argument
// (address, symbol or role).
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidSymbol) ||
		errors.Is(err, ErrInvalidRole)
}
