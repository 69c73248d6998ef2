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
	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/graph"
	"github.com/sa2812/skejj/pkg/utils/timeutil"
)

// typedEdge is one endpoint of a dependency edge together with its relation
// type. The other endpoint is implied by which adjacency list holds it.
type typedEdge struct {
	node int
	typ  v1.DependencyType
}

// cpmResult carries the intermediate CPM data the resource allocator needs:
// the initial placement plus each step's float window.
type cpmResult struct {
	solvedSteps []v1.SolvedStep
	// earlyStarts and lateStarts are keyed by step ID, clamped non-negative.
	earlyStarts map[string]int64
	lateStarts  map[string]int64
	projectEnd  int64
}

// runCPM executes the Critical Path Method over the template's dependency
// DAG. Durations, reference resolvability, and acyclicity are rechecked here
// even though the validator gates solving on them.
//
// All intermediate arithmetic is on signed 64-bit minutes: StartToFinish and
// FinishToFinish candidates can go transiently negative before clamping.
func runCPM(template *v1.ScheduleTemplate) (*cpmResult, error) {
	n := len(template.Steps)

	idToIdx := map[string]int{}
	for i, step := range template.Steps {
		idToIdx[step.ID] = i
	}

	for _, step := range template.Steps {
		if step.DurationMins <= 0 {
			return nil, &MissingDurationError{StepID: step.ID}
		}
	}

	// Build the DAG. Node index == step index; edges run predecessor to
	// successor and carry the dependency type.
	g := graph.New(n)
	succs := make([][]typedEdge, n)
	preds := make([][]typedEdge, n)
	for succIdx, step := range template.Steps {
		for _, dep := range step.Dependencies {
			predIdx, ok := idToIdx[dep.StepID]
			if !ok {
				return nil, &UnknownDependencyError{StepID: step.ID, DependencyID: dep.StepID}
			}
			g.AddEdge(predIdx, succIdx)
			succs[predIdx] = append(succs[predIdx], typedEdge{node: succIdx, typ: dep.DependencyType})
			preds[succIdx] = append(preds[succIdx], typedEdge{node: predIdx, typ: dep.DependencyType})
		}
	}

	topoOrder, ok := g.TopologicalOrder()
	if !ok {
		return nil, &CyclicDependencyError{StepIDs: lo.FilterMap(template.Steps, func(s v1.Step, _ int) (string, bool) {
			return s.ID, len(s.Dependencies) > 0
		})}
	}

	durations := lo.Map(template.Steps, func(s v1.Step, _ int) int64 {
		return s.DurationMins
	})

	// Forward pass: early start and early finish in topological order.
	es := make([]int64, n)
	ef := make([]int64, n)
	for _, idx := range topoOrder {
		ef[idx] = es[idx] + durations[idx]
		for _, edge := range succs[idx] {
			var candidate int64
			switch edge.typ {
			case v1.DependencyFinishToStart:
				candidate = ef[idx]
			case v1.DependencyStartToStart:
				candidate = es[idx]
			case v1.DependencyFinishToFinish:
				candidate = ef[idx] - durations[edge.node]
			case v1.DependencyStartToFinish:
				candidate = es[idx] - durations[edge.node]
			}
			if candidate = max(candidate, 0); candidate > es[edge.node] {
				es[edge.node] = candidate
			}
		}
		ef[idx] = es[idx] + durations[idx]
	}
	// Every predecessor is visited before its successors, so each ES is final
	// when its EF is computed above; recomputing every EF once the sweep is
	// done is a safeguard that leaves the values unchanged.
	for i := 0; i < n; i++ {
		ef[i] = es[i] + durations[i]
	}

	maxEF := lo.Max(ef)
	projectEnd := projectEndFor(template, maxEF)

	// Backward pass: late finish and late start in reverse topological order.
	lf := make([]int64, n)
	ls := make([]int64, n)
	for i := 0; i < n; i++ {
		lf[i] = projectEnd
		ls[i] = lf[i] - durations[i]
	}
	for i := n - 1; i >= 0; i-- {
		idx := topoOrder[i]
		ls[idx] = lf[idx] - durations[idx]
		for _, edge := range preds[idx] {
			var candidate int64
			switch edge.typ {
			case v1.DependencyFinishToStart:
				candidate = ls[idx]
			case v1.DependencyStartToStart:
				candidate = ls[idx] + durations[edge.node]
			case v1.DependencyFinishToFinish:
				candidate = lf[idx]
			case v1.DependencyStartToFinish:
				candidate = lf[idx] + durations[edge.node]
			}
			if candidate < lf[edge.node] {
				lf[edge.node] = candidate
				ls[edge.node] = candidate - durations[edge.node]
			}
		}
	}

	// Float, criticality, and initial placement per timing policy.
	result := &cpmResult{
		solvedSteps: make([]v1.SolvedStep, 0, n),
		earlyStarts: map[string]int64{},
		lateStarts:  map[string]int64{},
		projectEnd:  max(projectEnd, 0),
	}
	for i, step := range template.Steps {
		totalFloat := max(ls[i]-es[i], 0)
		start := es[i]
		if step.Policy() == v1.TimingPolicyAlap {
			start = ls[i]
		}
		start = max(start, 0)

		result.earlyStarts[step.ID] = max(es[i], 0)
		result.lateStarts[step.ID] = max(ls[i], 0)
		result.solvedSteps = append(result.solvedSteps, v1.SolvedStep{
			StepID:            step.ID,
			StartOffsetMins:   start,
			EndOffsetMins:     start + durations[i],
			AssignedResources: []v1.AssignedResource{},
			TotalFloatMins:    totalFloat,
			IsCritical:        totalFloat == 0,
		})
	}
	return result, nil
}

// projectEndFor returns the project end in minutes. When the template
// declares both a start and an end time, the declared window can stretch the
// project end beyond the critical path; a window shorter than the critical
// path never shrinks it (the schedule overruns the declared end instead of
// failing).
func projectEndFor(template *v1.ScheduleTemplate, maxEF int64) int64 {
	tc := template.TimeConstraint
	if tc == nil || tc.StartTime == nil || tc.EndTime == nil {
		return maxEF
	}
	start, startOK := timeutil.Parse(*tc.StartTime)
	end, endOK := timeutil.Parse(*tc.EndTime)
	if !startOK || !endOK {
		return maxEF
	}
	deadline := max(timeutil.MinutesBetween(start, end), 0)
	return max(deadline, maxEF)
}
