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

// Package solver computes feasible, time-offset schedules from templates. A
// solve runs the Critical Path Method over the typed dependency DAG, then a
// greedy priority-ordered resource allocator that shifts steps within their
// float windows. Solving is a pure function of its inputs: no preemption, no
// calendar masking, no rolling re-solve.
package solver

import (
	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/events"
	"github.com/sa2812/skejj/pkg/metrics"
	"github.com/sa2812/skejj/pkg/validation"
)

// Solve validates the template, runs CPM, and, when the template declares
// resources, allocates them. The inventory optionally overrides per-resource
// capacities. The inputs are never mutated; a solve on identical inputs
// yields an identical schedule and warning sequence.
func Solve(template *v1.ScheduleTemplate, inventory *v1.ResourceInventory) (*v1.SolvedSchedule, error) {
	defer metrics.Measure(metrics.SolveDurationSeconds)()

	if result := validation.Validate(template); !result.Ok() {
		metrics.SolvesTotal.With(map[string]string{metrics.ResultLabel: metrics.ResultValidationFailed}).Inc()
		return nil, NewValidationError(result.Errors)
	}

	cpm, err := runCPM(template)
	if err != nil {
		metrics.SolvesTotal.With(map[string]string{metrics.ResultLabel: metrics.ResultError}).Inc()
		return nil, err
	}

	recorder := events.NewSink()
	if len(template.Resources) > 0 {
		newAllocator(template, inventory, recorder).allocate(cpm.solvedSteps, cpm.earlyStarts, cpm.lateStarts)
	}
	for _, evt := range recorder.Events() {
		metrics.WarningsTotal.With(map[string]string{metrics.ReasonLabel: evt.Reason}).Inc()
	}

	// The allocator may have pushed steps beyond the CPM project end, so the
	// total duration is recomputed from the final placement.
	totalDuration := cpm.projectEnd
	if len(cpm.solvedSteps) > 0 {
		totalDuration = lo.Max(lo.Map(cpm.solvedSteps, func(s v1.SolvedStep, _ int) int64 {
			return s.EndOffsetMins
		}))
	}

	metrics.SolvesTotal.With(map[string]string{metrics.ResultLabel: metrics.ResultSuccess}).Inc()
	return &v1.SolvedSchedule{
		TemplateID:  template.ID,
		SolvedSteps: cpm.solvedSteps,
		Summary: v1.ScheduleSummary{
			TotalDurationMins: totalDuration,
			CriticalPathStepIDs: lo.FilterMap(cpm.solvedSteps, func(s v1.SolvedStep, _ int) (string, bool) {
				return s.StepID, s.IsCritical
			}),
		},
		Warnings: recorder.Messages(),
	}, nil
}
