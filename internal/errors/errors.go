// internal/errors/errors.go
package errors

import "fmt"

// FetchError is returned for any failed API request: transport failure,
// non-success status, or an undecodable body. The distinction is not kept.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrInvalidAccount is returned when the configured account is not a valid GitHub login.
type ErrInvalidAccount struct {
	Account string
}

func (e *ErrInvalidAccount) Error() string {
	return fmt.Sprintf("invalid account: %q, expected a GitHub login (alphanumerics and single hyphens, at most 39 characters)", e.Account)
}
