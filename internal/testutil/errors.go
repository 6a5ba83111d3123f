package testutil

import "errors"

// ErrSimulated is returned by test doubles that stand in for a failing
// store or collaborator.
var ErrSimulated = errors.New("simulated failure")
