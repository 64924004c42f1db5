// Package scheduler turns upcoming review and recurrence dates into timed
// events. The TUI consumes the event channel to surface "due now" notices
// without polling the collection.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/studyflow/matrixd/internal/model"
)

var ErrInvalidDueTime = errors.New("scheduler: invalid due time")

type DueKind string

const (
	DueReview     DueKind = "review"
	DueOccurrence DueKind = "occurrence"
)

type DueEvent struct {
	TaskID string
	Title  string
	Kind   DueKind
	DueAt  time.Time
}

// EventsForTasks collects the future due dates of the collection. Past dates
// are skipped: the matrix already shows those as due.
func EventsForTasks(tasks []model.Task, now time.Time) []DueEvent {
	out := make([]DueEvent, 0)
	for _, task := range tasks {
		if task.SpacedRepetition != nil && task.SpacedRepetition.Enabled &&
			task.SpacedRepetition.NextReview != nil && task.SpacedRepetition.NextReview.After(now) &&
			!task.Completed {
			out = append(out, DueEvent{
				TaskID: task.ID,
				Title:  task.Title,
				Kind:   DueReview,
				DueAt:  *task.SpacedRepetition.NextReview,
			})
		}
		if task.Recurrence != nil && task.Recurrence.Enabled &&
			task.Recurrence.NextOccurrence != nil && task.Recurrence.NextOccurrence.After(now) {
			out = append(out, DueEvent{
				TaskID: task.ID,
				Title:  task.Title,
				Kind:   DueOccurrence,
				DueAt:  *task.Recurrence.NextOccurrence,
			})
		}
	}
	return out
}

type queueItem struct {
	event DueEvent
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].event.DueAt.Before(pq[j].event.DueAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan DueEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan DueEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev DueEvent) error {
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Reset replaces the pending queue with the due dates of the given
// collection. Called after any mutation that may move a date.
func (e *Engine) Reset(tasks []model.Task, now time.Time) error {
	events := EventsForTasks(tasks, now)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	e.queue = e.queue[:0]
	for _, ev := range events {
		heap.Push(&e.queue, queueItem{event: ev})
	}
	e.signalWakeup()
	return nil
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (DueEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
