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

package validation_test

import (
	"testing"

	"github.com/samber/lo"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/test"
	"github.com/sa2812/skejj/pkg/validation"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation")
}

var _ = Describe("Validation", func() {
	Context("Errors", func() {
		It("should reject duplicate step IDs", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "prep"}),
				test.Step(v1.Step{ID: "prep"}),
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Duplicate step ID 'prep' -- each step must have a unique ID"))
		})
		It("should reject steps with no duration", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				{ID: "prep", Title: "Prep", DurationMins: 0, Dependencies: []v1.StepDependency{}, ResourceNeeds: []v1.ResourceNeed{}},
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Step 'Prep' has no duration -- every step needs a duration in minutes"))
		})
		It("should reject dependencies on steps that don't exist", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "bake", Title: "Bake", Dependencies: []v1.StepDependency{test.FinishToStart("preheat")}}),
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Step 'Bake' depends on 'preheat' which doesn't exist"))
		})
		It("should reject resource needs on resources that aren't defined", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "bake", Title: "Bake", ResourceNeeds: []v1.ResourceNeed{{ResourceID: "oven", Quantity: 1}}}),
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Step 'Bake' requires resource 'oven' which isn't defined"))
		})
		It("should reject cyclic dependency graphs", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "a", Dependencies: []v1.StepDependency{test.FinishToStart("b")}}),
				test.Step(v1.Step{ID: "b", Dependencies: []v1.StepDependency{test.FinishToStart("a")}}),
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeFalse())
			Expect(result.Errors).To(ContainElement("Circular dependency: a -> b -- steps have a dependency cycle"))
		})
		It("should accept a well-formed template", func() {
			template := test.Template(v1.ScheduleTemplate{
				Steps: []v1.Step{
					test.Step(v1.Step{ID: "a", ResourceNeeds: []v1.ResourceNeed{{ResourceID: "oven", Quantity: 1}}}),
					test.Step(v1.Step{ID: "b", Dependencies: []v1.StepDependency{test.FinishToStart("a")}, ResourceNeeds: []v1.ResourceNeed{{ResourceID: "oven", Quantity: 1}}}),
				},
				Resources: []v1.Resource{test.Resource(v1.Resource{ID: "oven"})},
			})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeTrue())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(BeEmpty())
		})
	})
	Context("Warnings", func() {
		It("should warn when no step declares a dependency", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(), test.Step(),
			}})
			result := validation.Validate(template)
			Expect(result.Ok()).To(BeTrue())
			Expect(result.Warnings).To(ContainElement("No dependencies found -- all steps will run in parallel. Add dependencies if steps need ordering."))
		})
		It("should warn when no resources are defined", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{test.Step()}})
			result := validation.Validate(template)
			Expect(result.Warnings).To(ContainElement("No resources defined -- solving without resource constraints"))
		})
		It("should warn about unconstrained steps when resources are defined", func() {
			template := test.Template(v1.ScheduleTemplate{
				Steps: []v1.Step{
					test.Step(v1.Step{ID: "prep", Title: "Prep"}),
					test.Step(v1.Step{ID: "bake", Title: "Bake", Dependencies: []v1.StepDependency{test.FinishToStart("prep")}, ResourceNeeds: []v1.ResourceNeed{{ResourceID: "oven", Quantity: 1}}}),
				},
				Resources: []v1.Resource{test.Resource(v1.Resource{ID: "oven"})},
			})
			result := validation.Validate(template)
			Expect(result.Warnings).To(ConsistOf("Step 'Prep' has no resource requirements -- it won't be resource-constrained"))
		})
		It("should warn about ALAP steps with no dependencies and no successors", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "a"}),
				test.Step(v1.Step{ID: "b", Dependencies: []v1.StepDependency{test.FinishToStart("a")}}),
				test.Step(v1.Step{ID: "z", Title: "Cleanup", TimingPolicy: lo.ToPtr(v1.TimingPolicyAlap)}),
			}})
			result := validation.Validate(template)
			Expect(result.Warnings).To(ContainElement("Step 'Cleanup' is set to ALAP but has no dependencies -- it will be pushed to the very end"))
		})
		It("should not warn about an ALAP step that has successors", func() {
			template := test.Template(v1.ScheduleTemplate{Steps: []v1.Step{
				test.Step(v1.Step{ID: "a", TimingPolicy: lo.ToPtr(v1.TimingPolicyAlap)}),
				test.Step(v1.Step{ID: "b", Dependencies: []v1.StepDependency{test.FinishToStart("a")}}),
			}})
			result := validation.Validate(template)
			Expect(result.Warnings).ToNot(ContainElement(ContainSubstring("is set to ALAP")))
		})
	})
})
