/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// CyclicDependencyError indicates the dependency graph has a cycle. StepIDs
// lists every step carrying at least one dependency, not the exact cycle
// members.
type CyclicDependencyError struct {
	StepIDs []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected involving steps: %s", strings.Join(e.StepIDs, ", "))
}

func IsCyclicDependencyError(err error) bool {
	var cErr *CyclicDependencyError
	return errors.As(err, &cErr)
}

// UnknownDependencyError indicates a step references a predecessor that does
// not exist in the template.
type UnknownDependencyError struct {
	StepID       string
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("step '%s' references unknown dependency step '%s'", e.StepID, e.DependencyID)
}

func IsUnknownDependencyError(err error) bool {
	var uErr *UnknownDependencyError
	return errors.As(err, &uErr)
}

// MissingDurationError indicates a step has a zero or negative duration.
type MissingDurationError struct {
	StepID string
}

func (e *MissingDurationError) Error() string {
	return fmt.Sprintf("step '%s' has no duration", e.StepID)
}

func IsMissingDurationError(err error) bool {
	var mErr *MissingDurationError
	return errors.As(err, &mErr)
}

// ValidationError aggregates the validator's error list when a solve is
// rejected before CPM runs.
type ValidationError struct {
	err error
}

// NewValidationError consolidates validator error messages.
func NewValidationError(messages []string) *ValidationError {
	var err error
	for _, msg := range messages {
		err = multierr.Append(err, errors.New(msg))
	}
	return &ValidationError{err: err}
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
