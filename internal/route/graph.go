package route

import (
	"fmt"
	"math"
	"sync"
)

// graph is an undirected weighted graph of places. Nodes remember their
// insertion order so that shortest paths are stable between runs.
type graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	order []*node
}

type node struct {
	id    string
	index int
	links []link
}

// link is one direction of an edge.
type link struct {
	to      *node
	edge    *Edge
	reverse bool
}

// step is a traversed edge. Reverse is set when it is walked from To to From.
type step struct {
	edge    *Edge
	reverse bool
}

func newGraph() *graph {
	return &graph{nodes: make(map[string]*node)}
}

// addNode adds a node with the given ID. Adding an existing ID does nothing.
func (g *graph) addNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	n := &node{id: id, index: len(g.order)}
	g.nodes[id] = n
	g.order = append(g.order, n)
}

// addEdge connects the endpoints of e in both directions. Both nodes must
// exist and differ.
func (g *graph) addEdge(e *Edge) error {
	fromID, toID := e.From.String(), e.To.String()
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, toID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	to, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	from.links = append(from.links, link{to: to, edge: e})
	to.links = append(to.links, link{to: from, edge: e, reverse: true})
	return nil
}

// shortestPath runs Dijkstra from fromID to toID. Among equally cheap
// candidates the node added first is settled first, and a cheaper path only
// replaces a known one when it is strictly cheaper.
func (g *graph) shortestPath(fromID, toID string, weight func(*Edge) float64) ([]step, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	from, ok := g.nodes[fromID]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", fromID)
	}
	to, ok := g.nodes[toID]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", toID)
	}

	dist := make([]float64, len(g.order))
	prev := make([]*step, len(g.order))
	prevNode := make([]*node, len(g.order))
	done := make([]bool, len(g.order))
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[from.index] = 0

	for {
		var cur *node
		for _, n := range g.order {
			if !done[n.index] && !math.IsInf(dist[n.index], 1) && (cur == nil || dist[n.index] < dist[cur.index]) {
				cur = n
			}
		}
		if cur == nil {
			return nil, fmt.Errorf("%w from %s to %s", ErrNoRoute, fromID, toID)
		}
		if cur == to {
			break
		}
		done[cur.index] = true
		for _, l := range cur.links {
			if done[l.to.index] {
				continue
			}
			if d := dist[cur.index] + weight(l.edge); d < dist[l.to.index] {
				dist[l.to.index] = d
				prev[l.to.index] = &step{edge: l.edge, reverse: l.reverse}
				prevNode[l.to.index] = cur
			}
		}
	}

	var path []step
	for n := to; n != from; n = prevNode[n.index] {
		path = append(path, *prev[n.index])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
