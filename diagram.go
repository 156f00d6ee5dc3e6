package flowchain

import (
	"fmt"
	"sort"
	"strings"
)

// Mermaid renders a flow's node graph as a mermaid flowchart. It is a
// read-only consumer of the graph: default edges become plain arrows,
// conditional edges become arrows labeled with their routing value.
//
// Nodes reachable from the Start sentinel are visited breadth-first in a
// deterministic order, so the output is stable for a given graph.
func Mermaid(f *Flow) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	ids := map[*Node]string{}
	var order []*Node

	// Breadth-first walk; conditional edges in sorted value order so the
	// output does not depend on map iteration.
	queue := []*Node{f.Start()}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if _, seen := ids[n]; seen {
			continue
		}
		ids[n] = fmt.Sprintf("n%d", len(order))
		order = append(order, n)

		if next := n.DefaultEdge(); next != nil {
			queue = append(queue, next)
		}
		cond := n.ConditionalEdges()
		values := make([]string, 0, len(cond))
		for v := range cond {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			queue = append(queue, cond[v])
		}
	}

	for _, n := range order {
		switch {
		case n.IsStart(), n.IsEnd():
			fmt.Fprintf(&b, "    %s([%s])\n", ids[n], n.Name())
		default:
			fmt.Fprintf(&b, "    %s[%s]\n", ids[n], n.Name())
		}
	}

	for _, n := range order {
		cond := n.ConditionalEdges()
		values := make([]string, 0, len(cond))
		for v := range cond {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", ids[n], v, ids[cond[v]])
		}
		if next := n.DefaultEdge(); next != nil {
			fmt.Fprintf(&b, "    %s --> %s\n", ids[n], ids[next])
		}
	}

	return b.String()
}
