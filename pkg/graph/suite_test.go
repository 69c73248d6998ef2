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

package graph_test

import (
	"testing"

	"github.com/sa2812/skejj/pkg/graph"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGraph(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Graph")
}

var _ = Describe("Digraph", func() {
	It("should order an empty graph", func() {
		order, ok := graph.New(0).TopologicalOrder()
		Expect(ok).To(BeTrue())
		Expect(order).To(BeEmpty())
	})
	It("should order vertices after their predecessors", func() {
		g := graph.New(4)
		g.AddEdge(0, 2)
		g.AddEdge(1, 2)
		g.AddEdge(2, 3)
		order, ok := g.TopologicalOrder()
		Expect(ok).To(BeTrue())
		Expect(order).To(Equal([]int{0, 1, 2, 3}))
	})
	It("should queue initially ready vertices in ascending id order", func() {
		g := graph.New(3)
		g.AddEdge(2, 0)
		order, ok := g.TopologicalOrder()
		Expect(ok).To(BeTrue())
		Expect(order).To(Equal([]int{1, 2, 0}))
	})
	It("should detect a two-vertex cycle", func() {
		g := graph.New(2)
		g.AddEdge(0, 1)
		g.AddEdge(1, 0)
		Expect(g.Cyclic()).To(BeTrue())
		_, ok := g.TopologicalOrder()
		Expect(ok).To(BeFalse())
	})
	It("should detect a self loop", func() {
		g := graph.New(1)
		g.AddEdge(0, 0)
		Expect(g.Cyclic()).To(BeTrue())
	})
	It("should tolerate parallel edges", func() {
		g := graph.New(2)
		g.AddEdge(0, 1)
		g.AddEdge(0, 1)
		order, ok := g.TopologicalOrder()
		Expect(ok).To(BeTrue())
		Expect(order).To(Equal([]int{0, 1}))
	})
})
