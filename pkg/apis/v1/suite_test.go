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

package v1_test

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAPIs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "APIs")
}

var _ = Describe("Template", func() {
	It("should default the timing policy to ASAP", func() {
		step := v1.Step{ID: "a"}
		Expect(step.Policy()).To(Equal(v1.TimingPolicyAsap))
		step.TimingPolicy = lo.ToPtr(v1.TimingPolicyAlap)
		Expect(step.Policy()).To(Equal(v1.TimingPolicyAlap))
	})
	It("should resolve resources by ID", func() {
		template := &v1.ScheduleTemplate{Resources: []v1.Resource{
			{ID: "oven", Name: "Oven", Kind: v1.ResourceKindEquipment, Capacity: 1},
		}}
		Expect(template.ResourceByID("oven")).ToNot(BeNil())
		Expect(template.ResourceByID("oven").Name).To(Equal("Oven"))
		Expect(template.ResourceByID("mixer")).To(BeNil())
	})
	It("should unmarshal the documented enum spellings", func() {
		raw := `{
			"id": "tpl",
			"name": "Template",
			"steps": [{
				"id": "a",
				"title": "A",
				"duration_mins": 30,
				"dependencies": [{"step_id": "b", "dependency_type": "StartToFinish"}],
				"timing_policy": "Alap",
				"resource_needs": [{"resource_id": "oven", "quantity": 1}]
			}],
			"tracks": [],
			"resources": [{"id": "oven", "name": "Oven", "kind": "Equipment", "capacity": 2, "roles": []}]
		}`
		var template v1.ScheduleTemplate
		Expect(json.Unmarshal([]byte(raw), &template)).To(Succeed())
		Expect(template.Steps[0].Dependencies[0].DependencyType).To(Equal(v1.DependencyStartToFinish))
		Expect(*template.Steps[0].TimingPolicy).To(Equal(v1.TimingPolicyAlap))
		Expect(template.Resources[0].Kind).To(Equal(v1.ResourceKindEquipment))
	})
})

var _ = Describe("SolvedSchedule", func() {
	It("should round-trip through JSON without losing field values", func() {
		schedule := v1.SolvedSchedule{
			TemplateID: "tpl",
			SolvedSteps: []v1.SolvedStep{{
				StepID:          "a",
				StartOffsetMins: 15,
				EndOffsetMins:   45,
				StartTime:       lo.ToPtr("2024-01-01T09:15:00"),
				EndTime:         lo.ToPtr("2024-01-01T09:45:00"),
				AssignedResources: []v1.AssignedResource{
					{ResourceID: "oven", QuantityUsed: 1},
					{ResourceID: "dough", QuantityUsed: 20},
				},
				TotalFloatMins: 5,
				IsCritical:     false,
			}},
			Summary: v1.ScheduleSummary{
				TotalDurationMins:   45,
				CriticalPathStepIDs: []string{"a"},
			},
			Warnings: []string{"Consumable 'dough' may run out -- 80 needed but only 20 available"},
		}
		data, err := json.Marshal(schedule)
		Expect(err).ToNot(HaveOccurred())
		var decoded v1.SolvedSchedule
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded).To(Equal(schedule))
	})
	It("should marshal with snake_case keys", func() {
		data, err := json.Marshal(v1.SolvedStep{StepID: "a", AssignedResources: []v1.AssignedResource{}})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"step_id"`))
		Expect(string(data)).To(ContainSubstring(`"start_offset_mins"`))
		Expect(string(data)).To(ContainSubstring(`"total_float_mins"`))
		Expect(string(data)).To(ContainSubstring(`"is_critical"`))
	})
})
