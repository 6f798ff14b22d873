// Package searchqueue serializes concurrent solve requests onto a
// single worker goroutine owning one solver.Solver (and its one
// transposition table), so the search core itself never has to be
// made concurrency-safe. Identical in-flight requests are
// deduplicated, and progress events are published to a Hub for a
// WebSocket feed.
package searchqueue

import (
	"fmt"
	"sync"
	"time"

	"github.com/aandres44/c04s/config"
	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/solver"
)

// Job is one queued or in-flight solve request.
type Job struct {
	Moves string

	done chan struct{}
	err  error

	Score       int
	NodesSeen   int64
	ElapsedTime time.Duration
}

// Wait blocks until the job finishes, then returns its error (if the
// move sequence was invalid) or nil.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Event describes a state change in the queue, published to a Hub
// for the progress WebSocket.
type Event struct {
	Type      string `json:"type"` // "enqueued", "started", "finished"
	Moves     string `json:"moves"`
	QueueSize int    `json:"queue_size"`
	Score     int    `json:"score,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Hub is anything that accepts progress events; *searchqueue.Queue
// publishes to it without knowing about transport (HTTP, WebSocket,
// or nothing at all in tests).
type Hub interface {
	Publish(Event)
}

// Queue owns the single worker goroutine and its solver.Solver.
type Queue struct {
	mu      sync.Mutex
	order   []string
	present map[string]*Job
	hub     Hub

	solver *solver.Solver
}

// New constructs a Queue backed by a fresh solver.Solver, configured
// from cfg, and starts its worker goroutine.
func New(cfg config.Config, hub Hub) *Queue {
	q := &Queue{
		present: make(map[string]*Job),
		hub:     hub,
		solver:  solver.New(cfg.TTSizeMB, cfg.Weak),
	}
	if cfg.LogSearchStats {
		q.solver.EnableStats()
	}
	go q.run()
	return q
}

// Enqueue submits moves for solving, returning the Job to await. A
// request for a move sequence already queued or in flight returns the
// existing Job instead of starting a duplicate solve.
func (q *Queue) Enqueue(moves string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job, ok := q.present[moves]; ok {
		return job
	}
	job := &Job{Moves: moves, done: make(chan struct{})}
	q.present[moves] = job
	q.order = append(q.order, moves)
	q.publish(Event{Type: "enqueued", Moves: moves, QueueSize: len(q.order)})
	return job
}

// Len reports the number of jobs waiting to start; the job in flight,
// if any, is not counted.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

func (q *Queue) publish(e Event) {
	if q.hub != nil {
		q.hub.Publish(e)
	}
}

func (q *Queue) dequeue() (string, *Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) == 0 {
		return "", nil, false
	}
	moves := q.order[0]
	q.order = q.order[1:]
	return moves, q.present[moves], true
}

func (q *Queue) finish(moves string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.present, moves)
}

func (q *Queue) run() {
	for {
		moves, job, ok := q.dequeue()
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		q.publish(Event{Type: "started", Moves: moves, QueueSize: q.Len()})
		q.process(job)
		q.finish(moves)
	}
}

func (q *Queue) process(job *Job) {
	defer close(job.done)

	pos := position.New()
	consumed := pos.PlaySequence(job.Moves)
	if consumed != len(job.Moves) {
		job.err = fmt.Errorf("searchqueue: invalid move at digit %d of %q", consumed, job.Moves)
		q.publish(Event{Type: "finished", Moves: job.Moves, QueueSize: q.Len(), Error: job.err.Error()})
		return
	}

	start := time.Now()
	job.Score = q.solver.Solve(&pos)
	job.ElapsedTime = time.Since(start)
	if stats := q.solver.Stats(); stats != nil {
		job.NodesSeen = stats.Nodes
	}
	q.publish(Event{Type: "finished", Moves: job.Moves, QueueSize: q.Len(), Score: job.Score})
}
