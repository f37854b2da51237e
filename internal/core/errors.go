package core

import "errors"

// Sentinel errors distinguishing the failure domains the HTTP layer cares
// about. Wrap with fmt.Errorf("%w: ...", ErrUpstream) and test with errors.Is.
var (
	// ErrUpstream marks failures reaching the upstream metrics endpoint.
	ErrUpstream = errors.New("upstream usage endpoint failure")

	// ErrStore marks key-value backend failures.
	ErrStore = errors.New("usage store failure")
)
