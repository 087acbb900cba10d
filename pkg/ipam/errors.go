// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipam

import (
	"fmt"

	"github.com/pkg/errors"
)

type errInvalidRequest struct {
	cause string
}

// ErrInvalidRequest returns an error indicating that a request cannot be
// served as given, for example because a CIDR or address does not parse, the
// address does not belong to the pool or is already in use, or a pool would
// overlap an existing one.
func ErrInvalidRequest(cause string, args ...interface{}) error {
	if len(args) != 0 {
		return errInvalidRequest{cause: fmt.Sprintf(cause, args...)}
	}
	return errInvalidRequest{cause: cause}
}

// Error returns the error message
func (e errInvalidRequest) Error() string {
	return e.cause
}

// IsErrInvalidRequest returns true if this error, or any error it wraps, is
// an invalid request error
func IsErrInvalidRequest(e error) bool {
	var target errInvalidRequest
	return errors.As(e, &target)
}

type errNotFound struct {
	cause string
}

// ErrNotFound returns an error indicating that a referenced pool or address
// space does not exist.
func ErrNotFound(cause string, args ...interface{}) error {
	if len(args) != 0 {
		return errNotFound{cause: fmt.Sprintf(cause, args...)}
	}
	return errNotFound{cause: cause}
}

// Error returns the error message
func (e errNotFound) Error() string {
	return e.cause
}

// IsErrNotFound returns true if this error, or any error it wraps, is a not
// found error
func IsErrNotFound(e error) bool {
	var target errNotFound
	return errors.As(e, &target)
}

type errResourceExhausted struct {
	cause string
}

// ErrResourceExhausted returns an error indicating that a pool has no free
// address left.
func ErrResourceExhausted(cause string, args ...interface{}) error {
	if len(args) != 0 {
		return errResourceExhausted{cause: fmt.Sprintf(cause, args...)}
	}
	return errResourceExhausted{cause: cause}
}

// Error returns the error message
func (e errResourceExhausted) Error() string {
	return e.cause
}

// IsErrResourceExhausted returns true if this error, or any error it wraps,
// is a resource exhaustion error
func IsErrResourceExhausted(e error) bool {
	var target errResourceExhausted
	return errors.As(e, &target)
}
