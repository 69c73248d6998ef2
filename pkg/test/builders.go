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

package test

import (
	v1 "github.com/sa2812/skejj/pkg/apis/v1"
)

// Template creates a test ScheduleTemplate with defaults that can be
// overridden by overrides. Overrides are applied in order, with a last write
// wins semantic.
func Template(overrides ...v1.ScheduleTemplate) *v1.ScheduleTemplate {
	override := v1.ScheduleTemplate{}
	mustMerge(&override, overrides...)
	if override.ID == "" {
		override.ID = RandomName()
	}
	if override.Name == "" {
		override.Name = override.ID
	}
	if override.Steps == nil {
		override.Steps = []v1.Step{}
	}
	if override.Tracks == nil {
		override.Tracks = []v1.Track{}
	}
	if override.Resources == nil {
		override.Resources = []v1.Resource{}
	}
	return &override
}

// Step creates a test Step with defaults that can be overridden by overrides.
func Step(overrides ...v1.Step) v1.Step {
	override := v1.Step{}
	mustMerge(&override, overrides...)
	if override.ID == "" {
		override.ID = RandomName()
	}
	if override.Title == "" {
		override.Title = override.ID
	}
	if override.DurationMins == 0 {
		override.DurationMins = 30
	}
	if override.Dependencies == nil {
		override.Dependencies = []v1.StepDependency{}
	}
	if override.ResourceNeeds == nil {
		override.ResourceNeeds = []v1.ResourceNeed{}
	}
	return override
}

// Resource creates a test Resource with defaults that can be overridden by
// overrides.
func Resource(overrides ...v1.Resource) v1.Resource {
	override := v1.Resource{}
	mustMerge(&override, overrides...)
	if override.ID == "" {
		override.ID = RandomName()
	}
	if override.Name == "" {
		override.Name = override.ID
	}
	if override.Kind == "" {
		override.Kind = v1.ResourceKindEquipment
	}
	if override.Capacity == 0 {
		override.Capacity = 1
	}
	if override.Roles == nil {
		override.Roles = []string{}
	}
	return override
}

// FinishToStart is shorthand for the most common dependency.
func FinishToStart(predecessorID string) v1.StepDependency {
	return v1.StepDependency{StepID: predecessorID, DependencyType: v1.DependencyFinishToStart}
}
