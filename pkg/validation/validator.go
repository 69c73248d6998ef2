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

// Package validation performs the structural checks that establish the
// preconditions the solver relies on: unique step IDs, positive durations,
// resolvable references, and an acyclic dependency graph.
package validation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/graph"
)

// Result holds the outcome of validating a schedule template. Errors block
// solving; warnings are advisory. Errors are listed before warnings.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Ok returns true when the template may be solved.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Validate checks a schedule template, returning errors and warnings. The
// template is never mutated.
func Validate(template *v1.ScheduleTemplate) Result {
	errs := []string{}
	warnings := []string{}

	stepIDs := lo.SliceToMap(template.Steps, func(s v1.Step) (string, struct{}) {
		return s.ID, struct{}{}
	})
	resourceIDs := lo.SliceToMap(template.Resources, func(r v1.Resource) (string, struct{}) {
		return r.ID, struct{}{}
	})

	// Duplicate step IDs
	seen := map[string]struct{}{}
	for _, step := range template.Steps {
		if _, ok := seen[step.ID]; ok {
			errs = append(errs, fmt.Sprintf("Duplicate step ID '%s' -- each step must have a unique ID", step.ID))
		}
		seen[step.ID] = struct{}{}
	}

	// Per-step errors
	for _, step := range template.Steps {
		if step.DurationMins <= 0 {
			errs = append(errs, fmt.Sprintf("Step '%s' has no duration -- every step needs a duration in minutes", step.Title))
		}
		for _, dep := range step.Dependencies {
			if _, ok := stepIDs[dep.StepID]; !ok {
				errs = append(errs, fmt.Sprintf("Step '%s' depends on '%s' which doesn't exist", step.Title, dep.StepID))
			}
		}
		for _, need := range step.ResourceNeeds {
			if _, ok := resourceIDs[need.ResourceID]; !ok {
				errs = append(errs, fmt.Sprintf("Step '%s' requires resource '%s' which isn't defined", step.Title, need.ResourceID))
			}
		}
	}

	// Circular dependencies. The unweighted dependency DAG suffices here; the
	// error names every step that carries at least one dependency rather than
	// claiming to isolate the exact cycle members.
	if cyclic(template) {
		cyclicIDs := lo.FilterMap(template.Steps, func(s v1.Step, _ int) (string, bool) {
			return s.ID, len(s.Dependencies) > 0
		})
		errs = append(errs, fmt.Sprintf("Circular dependency: %s -- steps have a dependency cycle", strings.Join(cyclicIDs, " -> ")))
	}

	// Warnings
	hasDependencies := lo.SomeBy(template.Steps, func(s v1.Step) bool {
		return len(s.Dependencies) > 0
	})
	if !hasDependencies {
		warnings = append(warnings, "No dependencies found -- all steps will run in parallel. Add dependencies if steps need ordering.")
	}

	if len(template.Resources) == 0 {
		warnings = append(warnings, "No resources defined -- solving without resource constraints")
	} else {
		for _, step := range template.Steps {
			if len(step.ResourceNeeds) == 0 {
				warnings = append(warnings, fmt.Sprintf("Step '%s' has no resource requirements -- it won't be resource-constrained", step.Title))
			}
		}
	}

	// An ALAP step with no dependencies and no successors floats freely and
	// will be pushed to the very end of the project.
	stepsWithSuccessors := map[string]struct{}{}
	for _, step := range template.Steps {
		for _, dep := range step.Dependencies {
			stepsWithSuccessors[dep.StepID] = struct{}{}
		}
	}
	for _, step := range template.Steps {
		_, hasSuccessors := stepsWithSuccessors[step.ID]
		if step.Policy() == v1.TimingPolicyAlap && len(step.Dependencies) == 0 && !hasSuccessors {
			warnings = append(warnings, fmt.Sprintf("Step '%s' is set to ALAP but has no dependencies -- it will be pushed to the very end", step.Title))
		}
	}

	return Result{Errors: errs, Warnings: warnings}
}

func cyclic(template *v1.ScheduleTemplate) bool {
	idToIdx := map[string]int{}
	for i, step := range template.Steps {
		idToIdx[step.ID] = i
	}
	g := graph.New(len(template.Steps))
	for succIdx, step := range template.Steps {
		for _, dep := range step.Dependencies {
			if predIdx, ok := idToIdx[dep.StepID]; ok {
				g.AddEdge(predIdx, succIdx)
			}
		}
	}
	return g.Cyclic()
}
