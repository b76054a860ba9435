// internal/sched/queue.go

package sched

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// jobQueue holds processes that have not arrived yet, ordered by arrival tick
// and then by id, so processes arriving together keep their input order.
type jobQueue struct {
	tree *redblacktree.Tree
}

func newJobQueue() *jobQueue {
	return &jobQueue{tree: redblacktree.NewWith(cmpJobKey)}
}

func (q *jobQueue) push(p *Process) {
	q.tree.Put(jobKey{arrival: p.Arrival, id: p.ID}, p)
}

// popArrived removes and returns the head if it has arrived by now.
func (q *jobQueue) popArrived(now int) (*Process, bool) {
	node := q.tree.Left()
	if node == nil {
		return nil, false
	}
	key := node.Key.(jobKey)
	if key.arrival > now {
		return nil, false
	}
	q.tree.Remove(key)
	return node.Value.(*Process), true
}

func (q *jobQueue) empty() bool { return q.tree.Empty() }

func (q *jobQueue) size() int { return q.tree.Size() }

// jobKey is used as a key in the red-black tree.
type jobKey struct {
	arrival int
	id      ProcessID
}

// cmpJobKey implements the Comparator ordering for jobKey.
func cmpJobKey(a, b any) int {
	ka, kb := a.(jobKey), b.(jobKey)
	switch {
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// readyQueue is the ordered list of arrived, unfinished processes. It stores
// ids; the records themselves live in the engine's arena.
type readyQueue struct {
	list  *arraylist.List
	arena []*Process // indexed by ProcessID
}

func newReadyQueue(arena []*Process) *readyQueue {
	return &readyQueue{list: arraylist.New(), arena: arena}
}

func (q *readyQueue) at(i int) *Process {
	v, ok := q.list.Get(i)
	if !ok {
		return nil
	}
	return q.arena[v.(ProcessID)]
}

func (q *readyQueue) insertAt(i int, p *Process) { q.list.Insert(i, p.ID) }

func (q *readyQueue) push(p *Process) { q.list.Add(p.ID) }

func (q *readyQueue) remove(i int) { q.list.Remove(i) }

// indexOf returns the position of id, or -1.
func (q *readyQueue) indexOf(id ProcessID) int {
	if id == 0 {
		return -1
	}
	return q.list.IndexOf(id)
}

func (q *readyQueue) size() int { return q.list.Size() }

func (q *readyQueue) empty() bool { return q.list.Empty() }

// each visits processes in queue order.
func (q *readyQueue) each(fn func(p *Process)) {
	it := q.list.Iterator()
	for it.Next() {
		fn(q.arena[it.Value().(ProcessID)])
	}
}
