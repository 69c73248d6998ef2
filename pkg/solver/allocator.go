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
	"sort"

	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/events"
	"github.com/sa2812/skejj/pkg/scheduling"
)

// allocator places steps onto per-resource reservation timelines without
// changing their durations. Steps are shifted within their float window to
// avoid capacity conflicts; when no slot inside the window fits, the step is
// placed past its late start and a warning event is published.
type allocator struct {
	recorder events.Recorder

	needs    map[string][]v1.ResourceNeed
	titles   map[string]string
	policies map[string]v1.TimingPolicy
	names    map[string]string
	kinds    map[string]v1.ResourceKind

	// capacity is the effective per-resource capacity after inventory
	// overrides have been applied.
	capacity map[string]int64
	// timelines hold reservations for Equipment and People resources.
	timelines map[string]*scheduling.Timeline
	// consumableRemaining drains as consumable needs commit.
	consumableRemaining map[string]int64
}

func newAllocator(template *v1.ScheduleTemplate, inventory *v1.ResourceInventory, recorder events.Recorder) *allocator {
	a := &allocator{
		recorder: recorder,
		needs: lo.SliceToMap(template.Steps, func(s v1.Step) (string, []v1.ResourceNeed) {
			return s.ID, s.ResourceNeeds
		}),
		titles: lo.SliceToMap(template.Steps, func(s v1.Step) (string, string) {
			return s.ID, s.Title
		}),
		policies: map[string]v1.TimingPolicy{},
		names: lo.SliceToMap(template.Resources, func(r v1.Resource) (string, string) {
			return r.ID, r.Name
		}),
		kinds: lo.SliceToMap(template.Resources, func(r v1.Resource) (string, v1.ResourceKind) {
			return r.ID, r.Kind
		}),
		capacity: lo.SliceToMap(template.Resources, func(r v1.Resource) (string, int64) {
			return r.ID, r.Capacity
		}),
		timelines:           map[string]*scheduling.Timeline{},
		consumableRemaining: map[string]int64{},
	}
	for _, step := range template.Steps {
		if step.TimingPolicy != nil {
			a.policies[step.ID] = *step.TimingPolicy
		}
	}
	a.applyInventory(inventory)
	for _, r := range template.Resources {
		if r.Kind == v1.ResourceKindConsumable {
			a.consumableRemaining[r.ID] = a.capacity[r.ID]
		} else {
			a.timelines[r.ID] = scheduling.NewTimeline()
		}
	}
	return a
}

// applyInventory replaces template capacities with caller-supplied
// availability, emitting one override event per matched resource. Items
// referencing unknown resource IDs are silently ignored.
func (a *allocator) applyInventory(inventory *v1.ResourceInventory) {
	if inventory == nil {
		return
	}
	for _, item := range inventory.Items {
		templateCap, ok := a.capacity[item.ResourceID]
		if !ok {
			continue
		}
		name := a.resourceName(item.ResourceID)
		a.recorder.Publish(InventoryOverride(name, item.AvailableQuantity, templateCap))
		a.capacity[item.ResourceID] = item.AvailableQuantity
	}
}

func (a *allocator) resourceName(resourceID string) string {
	return lo.ValueOr(a.names, resourceID, resourceID)
}

// allocate processes the solved steps in priority order, mutating their
// start/end offsets and assigned resources in place. The order is total:
// critical steps first, then smaller early start, then larger duration
// (harder to place). Timelines are append-only, so repeated solves on
// identical input yield identical schedules and warning sequences.
func (a *allocator) allocate(steps []v1.SolvedStep, earlyStarts, lateStarts map[string]int64) {
	order := lo.Range(len(steps))
	sort.SliceStable(order, func(x, y int) bool {
		sx, sy := steps[order[x]], steps[order[y]]
		if sx.IsCritical != sy.IsCritical {
			return sx.IsCritical
		}
		esX, esY := earlyStarts[sx.StepID], earlyStarts[sy.StepID]
		if esX != esY {
			return esX < esY
		}
		return sx.EndOffsetMins-sx.StartOffsetMins > sy.EndOffsetMins-sy.StartOffsetMins
	})

	for _, idx := range order {
		a.place(&steps[idx], earlyStarts, lateStarts)
	}
}

func (a *allocator) place(step *v1.SolvedStep, earlyStarts, lateStarts map[string]int64) {
	needs := a.needs[step.StepID]
	if len(needs) == 0 {
		// No resource needs: the CPM placement stands.
		return
	}

	es := earlyStarts[step.StepID]
	ls := lo.ValueOr(lateStarts, step.StepID, es)
	duration := step.EndOffsetMins - step.StartOffsetMins
	isAlap := a.policies[step.StepID] == v1.TimingPolicyAlap

	// Consumable pre-check: advisory only, allocation proceeds regardless.
	for _, need := range needs {
		if a.kinds[need.ResourceID] != v1.ResourceKindConsumable {
			continue
		}
		if remaining := a.consumableRemaining[need.ResourceID]; remaining < need.Quantity {
			a.recorder.Publish(ConsumableShortage(a.resourceName(need.ResourceID), need.Quantity, remaining))
		}
	}

	timedNeeds := lo.Filter(needs, func(n v1.ResourceNeed, _ int) bool {
		return a.kinds[n.ResourceID] != v1.ResourceKindConsumable
	})

	var feasibleStart int64
	pushedPastFloat := false
	blockingResourceName := ""

	switch {
	case len(timedNeeds) == 0:
		// Only consumables: keep the CPM-chosen start.
		feasibleStart = step.StartOffsetMins
	case isAlap:
		if latest, ok := a.latestFeasibleInWindow(es, ls, duration, timedNeeds); ok {
			feasibleStart = latest
		} else {
			// No slot inside [es, ls]: fall back to the earliest feasible
			// start, which may land past the float.
			found, blocker := a.earliestFeasible(es, duration, timedNeeds)
			feasibleStart = found
			if feasibleStart > ls {
				pushedPastFloat = true
				blockingResourceName = blocker
			}
		}
	default:
		found, blocker := a.earliestFeasible(es, duration, timedNeeds)
		feasibleStart = found
		if feasibleStart > ls {
			pushedPastFloat = true
			blockingResourceName = blocker
		}
	}

	if pushedPastFloat {
		title := lo.ValueOr(a.titles, step.StepID, step.StepID)
		a.recorder.Publish(DelayedBeyondSlack(title, lo.Ternary(blockingResourceName != "", blockingResourceName, "resource")))
	}

	a.commit(step, feasibleStart, duration, needs)
}

// latestFeasibleInWindow finds the latest feasible start in [es, ls] for an
// ALAP step. Candidates combine reservation endpoints and
// latest-finish-before-reservation points; given the interval algebra in use,
// moving a step earlier than the coarsest candidate can never improve
// feasibility, so the candidate set is complete for this model even though it
// is not a continuous search.
func (a *allocator) latestFeasibleInWindow(es, ls, duration int64, timedNeeds []v1.ResourceNeed) (int64, bool) {
	candidates := []int64{ls}
	for _, need := range timedNeeds {
		timeline, ok := a.timelines[need.ResourceID]
		if !ok {
			continue
		}
		for _, r := range timeline.Reservations() {
			// Latest start that still finishes before the reservation begins.
			if r.Start >= duration {
				if c := r.Start - duration; c >= es && c <= ls {
					candidates = append(candidates, c)
				}
			}
			// Right after the reservation ends.
			if r.End >= es && r.End <= ls {
				candidates = append(candidates, r.End)
			}
		}
	}
	candidates = append(candidates, es)
	candidates = lo.Uniq(candidates)
	sort.Slice(candidates, func(x, y int) bool { return candidates[x] < candidates[y] })

	for i := len(candidates) - 1; i >= 0; i-- {
		t := candidates[i]
		if t > ls {
			continue
		}
		if ok, _ := a.feasibleAt(t, duration, timedNeeds); ok {
			return t, true
		}
	}
	return 0, false
}

// earliestFeasible finds the earliest feasible start >= searchFrom using a
// boundary-jump scan over reservation end points. The second return is the
// display name of the first resource that blocked the step at searchFrom,
// used for the past-float warning.
func (a *allocator) earliestFeasible(searchFrom, duration int64, timedNeeds []v1.ResourceNeed) (int64, string) {
	candidates := []int64{searchFrom}
	for _, need := range timedNeeds {
		timeline, ok := a.timelines[need.ResourceID]
		if !ok {
			continue
		}
		for _, r := range timeline.Reservations() {
			if r.End >= searchFrom {
				candidates = append(candidates, r.End)
			}
		}
	}
	candidates = lo.Uniq(candidates)
	sort.Slice(candidates, func(x, y int) bool { return candidates[x] < candidates[y] })

	firstBlocker := ""
	for _, t := range candidates {
		ok, blockingID := a.feasibleAt(t, duration, timedNeeds)
		if ok {
			return t, firstBlocker
		}
		if firstBlocker == "" && blockingID != "" {
			firstBlocker = a.resourceName(blockingID)
		}
	}
	// Reservations are bounded, so some candidate always fits; this fallback
	// should not occur.
	return searchFrom, firstBlocker
}

// feasibleAt reports whether every timed need fits at [t, t+duration), and
// the resource ID that failed the capacity test when it does not.
func (a *allocator) feasibleAt(t, duration int64, timedNeeds []v1.ResourceNeed) (bool, string) {
	for _, need := range timedNeeds {
		timeline, ok := a.timelines[need.ResourceID]
		if !ok {
			return false, need.ResourceID
		}
		if timeline.UsedInRange(t, t+duration)+need.Quantity > a.capacity[need.ResourceID] {
			return false, need.ResourceID
		}
	}
	return true, ""
}

// commit pins the step at the chosen start, reserves its timed needs, and
// drains its consumable needs. Consumable usage is recorded truthfully:
// quantity-used is clipped to what actually remained at commit time.
func (a *allocator) commit(step *v1.SolvedStep, start, duration int64, needs []v1.ResourceNeed) {
	step.StartOffsetMins = start
	step.EndOffsetMins = start + duration

	assigned := []v1.AssignedResource{}
	for _, need := range needs {
		switch a.kinds[need.ResourceID] {
		case v1.ResourceKindConsumable:
			remaining, ok := a.consumableRemaining[need.ResourceID]
			if !ok {
				continue
			}
			used := min(need.Quantity, remaining)
			a.consumableRemaining[need.ResourceID] = max(remaining-need.Quantity, 0)
			assigned = append(assigned, v1.AssignedResource{ResourceID: need.ResourceID, QuantityUsed: used})
		case v1.ResourceKindEquipment, v1.ResourceKindPeople:
			if timeline, ok := a.timelines[need.ResourceID]; ok {
				timeline.Reserve(start, start+duration, need.Quantity)
			}
			assigned = append(assigned, v1.AssignedResource{ResourceID: need.ResourceID, QuantityUsed: need.Quantity})
		}
	}
	step.AssignedResources = assigned
}
