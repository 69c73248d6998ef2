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

package v1

import "github.com/samber/lo"

// TimingPolicy is the per-step scheduling policy: place the step as soon as
// possible or as late as possible within its available window.
type TimingPolicy string

const (
	TimingPolicyAsap TimingPolicy = "Asap"
	TimingPolicyAlap TimingPolicy = "Alap"
)

// DependencyType is one of the four standard precedence relations used in
// project scheduling.
type DependencyType string

const (
	// DependencyFinishToStart requires the successor to start after the
	// predecessor finishes. This is the most common relation.
	DependencyFinishToStart DependencyType = "FinishToStart"
	// DependencyStartToStart requires the successor to start after the
	// predecessor starts.
	DependencyStartToStart DependencyType = "StartToStart"
	// DependencyFinishToFinish requires the successor to finish after the
	// predecessor finishes.
	DependencyFinishToFinish DependencyType = "FinishToFinish"
	// DependencyStartToFinish requires the successor to finish after the
	// predecessor starts.
	DependencyStartToFinish DependencyType = "StartToFinish"
)

// ResourceKind categorizes a resource, which determines how capacity and
// quantity are interpreted.
type ResourceKind string

const (
	// ResourceKindEquipment is a physical asset with integer slot capacity
	// (e.g. an oven with 3 spaces). Capacity is a concurrent limit.
	ResourceKindEquipment ResourceKind = "Equipment"
	// ResourceKindPeople is headcount. Capacity is a concurrent limit.
	ResourceKindPeople ResourceKind = "People"
	// ResourceKindConsumable is drained as steps run. Capacity is a total
	// budget rather than a concurrent limit.
	ResourceKindConsumable ResourceKind = "Consumable"
)

// StepDependency is a directed dependency from a predecessor step to the step
// that declares it.
type StepDependency struct {
	// StepID references the predecessor step by ID.
	StepID         string         `json:"step_id"`
	DependencyType DependencyType `json:"dependency_type"`
}

// ResourceNeed declares what a single step requires from a resource.
type ResourceNeed struct {
	// ResourceID references a Resource by its ID.
	ResourceID string `json:"resource_id"`
	// Quantity is how many units/slots/people are needed.
	Quantity int64 `json:"quantity"`
	// MinPeople is an optional lower bound for People resources. Carried for
	// API compatibility; the allocator does not enforce it.
	MinPeople *int64 `json:"min_people,omitempty"`
	// MaxPeople is an optional upper bound for People resources. Carried for
	// API compatibility; the allocator does not enforce it.
	MaxPeople *int64 `json:"max_people,omitempty"`
}

// Step is a single work unit in a schedule template.
type Step struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	// DurationMins is the duration of this step in minutes. Must be > 0.
	DurationMins int64 `json:"duration_mins"`
	// Dependencies are predecessor references with their relation type.
	Dependencies []StepDependency `json:"dependencies"`
	// TrackID is optional membership in a Track.
	TrackID *string `json:"track_id,omitempty"`
	// TimingPolicy defaults to ASAP when nil.
	TimingPolicy *TimingPolicy `json:"timing_policy,omitempty"`
	// ResourceNeeds are the resource requirements of this step.
	ResourceNeeds []ResourceNeed `json:"resource_needs"`
}

// Policy returns the step's timing policy, defaulting to ASAP.
func (s *Step) Policy() TimingPolicy {
	return lo.FromPtrOr(s.TimingPolicy, TimingPolicyAsap)
}

// Track is an organizational grouping of steps (e.g. "Kitchen",
// "Prep Station"). Tracks carry no solver semantics.
type Track struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resource is a shared resource defined by a schedule template.
type Resource struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Kind ResourceKind `json:"kind"`
	// Capacity interpretation depends on Kind:
	// - Equipment: number of simultaneous slots.
	// - People: total headcount available.
	// - Consumable: total quantity available.
	Capacity int64 `json:"capacity"`
	// Roles are named roles within a People resource (e.g. ["driver",
	// "navigator"]).
	Roles []string `json:"roles"`
}

// TimeConstraint is a schedule-level window that drives forward or backward
// wall-clock scheduling.
type TimeConstraint struct {
	// StartTime is an ISO 8601 datetime string; drives forward scheduling.
	StartTime *string `json:"start_time,omitempty"`
	// EndTime is an ISO 8601 datetime string; drives backward scheduling when
	// StartTime is absent.
	EndTime *string `json:"end_time,omitempty"`
}

// ScheduleTemplate is the user-defined template. Apart from the optional
// TimeConstraint, it contains no concrete wall-clock times; all solver
// arithmetic is on integer minute offsets.
type ScheduleTemplate struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Steps          []Step          `json:"steps"`
	Tracks         []Track         `json:"tracks"`
	Resources      []Resource      `json:"resources"`
	TimeConstraint *TimeConstraint `json:"time_constraint,omitempty"`
	// DefaultNumPeople is a fallback headcount for steps that declare no
	// explicit people need. Carried for API compatibility.
	DefaultNumPeople *int64 `json:"default_num_people,omitempty"`
}

// ResourceByID returns the resource with the given ID, or nil.
func (t *ScheduleTemplate) ResourceByID(id string) *Resource {
	for i := range t.Resources {
		if t.Resources[i].ID == id {
			return &t.Resources[i]
		}
	}
	return nil
}
