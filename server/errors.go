// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import "fmt"

// ValidationError reports a malformed payload or a missing required field.
// The first failure encountered is the one reported.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// RoutingError reports a tag with no entry in the routing table.
type RoutingError struct {
	Tag string
}

// The capitalization matches the notification text operators already key on.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("Unsupported tag: %s", e.Tag)
}

// TrackerError reports a failed issue tracker call, REST or GraphQL. The
// tracker can report application-level errors inside a 200 response; those
// surface here as well.
type TrackerError struct {
	Op  string
	Err error
}

func (e *TrackerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}

// SecretError reports a failure to resolve the tracker token. It aborts the
// invocation before any file is touched.
type SecretError struct {
	Name string
	Err  error
}

func (e *SecretError) Error() string {
	return fmt.Sprintf("failed to fetch secret %s: %v", e.Name, e.Err)
}

func (e *SecretError) Unwrap() error {
	return e.Err
}
