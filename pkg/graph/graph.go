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

// Package graph provides a minimal directed graph over dense integer vertex
// ids, sized for dependency analysis of schedule templates. Vertices are step
// indices; no cyclic owning references are introduced.
package graph

// Digraph is a directed graph with a fixed vertex count.
type Digraph struct {
	n        int
	out      [][]int
	indegree []int
}

// New returns a Digraph with n vertices numbered [0, n) and no edges.
func New(n int) *Digraph {
	return &Digraph{
		n:        n,
		out:      make([][]int, n),
		indegree: make([]int, n),
	}
}

// AddEdge adds a directed edge from -> to. Parallel edges are allowed; each
// occurrence counts toward the indegree of the target.
func (g *Digraph) AddEdge(from, to int) {
	g.out[from] = append(g.out[from], to)
	g.indegree[to]++
}

// TopologicalOrder returns the vertices in a topological order and true, or
// nil and false when the graph is cyclic. The order is deterministic: the
// initially ready vertices are queued in ascending id order, and vertices
// that become ready later are processed first-in first-out.
func (g *Digraph) TopologicalOrder() ([]int, bool) {
	indegree := make([]int, g.n)
	copy(indegree, g.indegree)

	queue := make([]int, 0, g.n)
	for v := 0; v < g.n; v++ {
		if indegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]int, 0, g.n)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, succ := range g.out[v] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	if len(order) != g.n {
		return nil, false
	}
	return order, true
}

// Cyclic returns true when the graph contains at least one directed cycle.
func (g *Digraph) Cyclic() bool {
	_, ok := g.TopologicalOrder()
	return !ok
}
