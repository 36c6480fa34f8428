package scene

import (
	"sync"
	"sync/atomic"
)

// ElementRegister maps node ids to live nodes. Pipeline tasks capture ids
// and resolve them here instead of holding node pointers.
type ElementRegister struct {
	mu     sync.RWMutex
	nextID atomic.Int32
	nodes  map[int32]Node
}

var (
	registerOnce sync.Once
	register     *ElementRegister
)

// Register returns the process-wide element register.
func Register() *ElementRegister {
	registerOnce.Do(func() {
		register = &ElementRegister{nodes: make(map[int32]Node)}
	})
	return register
}

// MakeUniqueID returns an id that has not been handed out before.
func (r *ElementRegister) MakeUniqueID() int32 {
	return r.nextID.Add(1)
}

// AddNode registers n under its id. It reports false when another node
// already holds the id.
func (r *ElementRegister) AddNode(n Node) bool {
	if n == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.nodes[n.ID()]; ok && existing != n {
		return false
	}
	r.nodes[n.ID()] = n
	return true
}

// RemoveNode drops id from the register and reports whether it was present.
func (r *ElementRegister) RemoveNode(id int32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[id]; !ok {
		return false
	}
	delete(r.nodes, id)
	return true
}

// Node returns the node registered under id, or nil.
func (r *ElementRegister) Node(id int32) Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodes[id]
}

// FrameNode returns the frame node registered under id, or nil.
func (r *ElementRegister) FrameNode(id int32) *FrameNode {
	f, _ := r.Node(id).(*FrameNode)
	return f
}

// FrameNodeByInspectorID returns a registered frame node carrying the
// inspector id, or nil.
func (r *ElementRegister) FrameNodeByInspectorID(inspectorID string) *FrameNode {
	if inspectorID == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.nodes {
		if f, ok := n.(*FrameNode); ok && f.InspectorID() == inspectorID {
			return f
		}
	}
	return nil
}

// Len returns the number of registered nodes.
func (r *ElementRegister) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
