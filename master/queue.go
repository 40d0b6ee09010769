package master

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
	"github.com/coreindex/idxmaster/cmn/cos"
)

// Task is one unit of work submitted to the Queue: a pure function
// from the current cluster state to the next one, plus an optional
// post-commit hook invoked after the new state has been published.
// Ordinary tasks (the coordinator's pre-flight + metadata-commit step)
// leave OnCommitted nil; the routing-commit task uses it to notify the
// user listener only after its own write is locally observable. ID
// correlates a multi-step task chain (e.g. metadata-commit followed by
// routing-commit) in log output; Submit assigns one if the caller left it
// empty.
type Task struct {
	ID          string
	Description string
	Execute     func(*cluster.State) *cluster.State
	OnCommitted func(*cluster.State)
}

// PublishFunc externalizes a state transition to peers and local
// subscribers. It runs synchronously on the queue's worker
// goroutine between a task's completion and the next task's start, so it
// must not block indefinitely — the transport layer is expected to hand
// off to its own broadcast goroutines.
type PublishFunc func(prev, next *cluster.State)

// Queue is the cluster-state update queue: a single dedicated
// worker draining a task channel in submission order, serializing every
// mutation of authoritative cluster state. Grounded on the reference
// architecture's bmdOwner/rmdOwner.modify(ctx) clone-mutate-persist
// pattern, generalized from a mutex-guarded method call to an explicit
// task queue so submission is always non-blocking for the caller.
type Queue struct {
	tasks   chan Task
	publish PublishFunc

	mtx   sync.RWMutex
	state *cluster.State

	done chan struct{}
}

func NewQueue(initial *cluster.State, publish PublishFunc) *Queue {
	q := &Queue{
		tasks:   make(chan Task, 256),
		publish: publish,
		state:   initial,
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		q.exec(task)
	}
}

// exec runs one task under the single-writer guarantee. A task that
// panics does not alter state: the panic is recovered, logged, and the
// worker moves on to the next task.
func (q *Queue) exec(task Task) {
	queueDepth.Set(float64(len(q.tasks)))
	prev := q.State()

	next := func() (result *cluster.State) {
		defer func() {
			if r := recover(); r != nil {
				glog.Errorf("cluster-state task %s %q panicked: %v", task.ID, task.Description, r)
				result = nil
			}
		}()
		return task.Execute(prev)
	}()

	if next == nil {
		tasksProcessed.WithLabelValues("panicked").Inc()
		return
	}
	if next.Equal(prev) {
		tasksProcessed.WithLabelValues("no_op").Inc()
		return
	}

	q.mtx.Lock()
	q.state = next
	q.mtx.Unlock()
	tasksProcessed.WithLabelValues("committed").Inc()
	glog.V(4).Infof("cluster-state task %s %q committed at %s", task.ID, task.Description, cos.FormatTimestamp(time.Now()))

	if q.publish != nil {
		q.publish(prev, next)
	}
	if task.OnCommitted != nil {
		task.OnCommitted(next)
	}
}

// Submit enqueues a task and returns immediately; it never waits for the
// task to run. A task submitted without an ID is assigned one so every
// task, including ones the coordinator builds internally, can be
// correlated across its begin/commit log lines.
func (q *Queue) Submit(task Task) {
	if task.ID == "" {
		task.ID = cmn.GenUUID()
	}
	q.tasks <- task
}

// State returns the most recently published snapshot.
func (q *Queue) State() *cluster.State {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	return q.state
}

// Stop drains remaining queued tasks and shuts the worker down. Intended
// for orderly daemon shutdown and tests, not for normal operation.
func (q *Queue) Stop() {
	close(q.tasks)
	<-q.done
}
