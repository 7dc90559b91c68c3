// Package parse converts delimiter-separated log sources into entries and
// drives ingestion runs.
//
// A Runner owns the parse lifecycle for one store: synchronous whole-file
// parsing, asynchronous batched parsing with progress messages, incremental
// append parsing for live mode, and cooperative cancellation. At most one
// run is active per Runner; starting a new run cancels the previous one and
// waits for it to exit before the new worker touches the store, so the store
// always has exactly one writer.
//
// Progress is reported over a channel, one message per batch plus a terminal
// message, in strictly increasing batch order. The consumer must read the
// channel until it is closed.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/store"
	"github.com/tlogan/sawmill/internal/tags"
)

const (
	// BatchSize is the number of source lines parsed between progress
	// messages and cancellation checks.
	BatchSize = 5000

	// MaxAppendLines bounds one store append during incremental parsing;
	// a larger burst is flushed in chunks of this size.
	MaxAppendLines = 10000

	scanBufferInitial = 64 * 1024
	scanBufferMax     = 1024 * 1024
)

// ErrUnreadable reports that the source could not be opened at run start.
// It is surfaced synchronously, before any batch is produced.
var ErrUnreadable = errors.New("source unreadable")

// Outcome is the terminal result of an asynchronous run.
type Outcome int

const (
	OutcomeNone      Outcome = iota // not terminal yet
	OutcomeCompleted                // whole source consumed
	OutcomeCancelled                // stopped at a batch boundary; published batches remain valid
	OutcomeFailed                   // mid-run read error; published batches remain valid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "running"
	}
}

// Progress is one notification from an asynchronous run. Counts are
// cumulative across the run.
type Progress struct {
	Batch   int // 1-based batch number; 0 for the initial "starting" message
	Counts  store.Counts
	Percent int // bytes consumed relative to the size at run start

	Terminal bool
	Outcome  Outcome
	Err      error // set when Outcome is OutcomeFailed
}

// Runner drives parse runs against a single store.
type Runner struct {
	schema entry.Schema
	reg    *tags.Registry
	store  *store.Store

	mu      sync.Mutex
	running bool
	stop    chan struct{} // closed by Cancel
	done    chan struct{} // closed by the worker on exit
	ch      chan Progress // current run's progress channel
}

// NewRunner returns a Runner writing to st, resolving level tokens through
// reg, using the given line schema.
func NewRunner(schema entry.Schema, reg *tags.Registry, st *store.Store) *Runner {
	return &Runner{schema: schema, reg: reg, store: st}
}

// Store returns the store this runner writes to.
func (r *Runner) Store() *store.Store { return r.store }

// Schema returns the active line schema.
func (r *Runner) Schema() entry.Schema { return r.schema }

// Running reports whether an asynchronous run is active. Non-blocking.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Parse consumes the whole source synchronously, replacing the store's
// contents, and returns the parsed entries.
func (r *Runner) Parse(path string) ([]entry.Entry, error) {
	r.CancelAndWait()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer file.Close()

	r.store.Reset()

	var lines []string
	ordinal := 1
	flush := func() {
		if len(lines) == 0 {
			return
		}
		batch, counts := parseBatchLines(lines, ordinal, r.schema, r.reg)
		r.store.Append(batch, counts)
		ordinal += len(lines)
		lines = lines[:0]
	}

	scanner := newScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) >= BatchSize {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	flush()
	return r.store.Snapshot().Entries, nil
}

// Start begins an asynchronous run over path. Any active run is cancelled
// and waited for first, then the store is reset and a worker goroutine takes
// over. The returned channel carries one Progress per batch plus a terminal
// message and is closed when the worker exits.
//
// An unreadable source fails fast: the error is returned here and no worker
// starts.
func (r *Runner) Start(path string) (<-chan Progress, error) {
	r.CancelAndWait()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	ch := make(chan Progress, 16)

	r.mu.Lock()
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.ch = ch
	stop, done := r.stop, r.done
	r.mu.Unlock()

	r.store.Reset()

	go r.run(file, size, ch, stop, done)
	return ch, nil
}

// Cancel requests cooperative cancellation of the active run. The worker
// observes the request at the next batch boundary; already-published batches
// stay in the store. Safe to call when no run is active.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running && r.stop != nil {
		select {
		case <-r.stop:
		default:
			close(r.stop)
		}
	}
}

// CancelAndWait cancels the active run, if any, and blocks until its worker
// has exited. It drains the run's progress channel so a worker blocked on a
// send can observe the cancellation and deliver its terminal message.
func (r *Runner) CancelAndWait() {
	r.mu.Lock()
	ch, done := r.ch, r.done
	if r.running && r.stop != nil {
		select {
		case <-r.stop:
		default:
			close(r.stop)
		}
	}
	r.mu.Unlock()

	if ch != nil {
		for range ch {
		}
	}
	if done != nil {
		<-done
	}
}

func (r *Runner) run(file *os.File, size int64, ch chan<- Progress, stop, done chan struct{}) {
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(done)
		close(ch)
	}()
	defer file.Close()

	stopped := func() bool {
		select {
		case <-stop:
			return true
		default:
			return false
		}
	}
	// Progress sends give up once cancellation is requested so a slow
	// consumer cannot delay the terminal message; the terminal send itself
	// always goes out (the channel contract requires draining).
	send := func(p Progress) {
		select {
		case ch <- p:
		case <-stop:
		}
	}

	var (
		lines     []string
		batchNum  int
		ordinal   int // 1-based ordinal of the first line in the pending batch
		bytesRead int64
	)
	ordinal = 1

	flush := func() {
		if len(lines) == 0 {
			return
		}
		batch, counts := parseBatchLines(lines, ordinal, r.schema, r.reg)
		r.store.Append(batch, counts)
		ordinal += len(lines)
		lines = lines[:0]
		batchNum++
	}
	percent := func() int {
		if size <= 0 {
			return 100
		}
		p := int(bytesRead * 100 / size)
		if p > 100 {
			p = 100
		}
		return p
	}

	send(Progress{Batch: 0, Percent: 0})

	scanner := newScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		bytesRead += int64(len(line)) + 1

		if len(lines) >= BatchSize {
			flush()
			send(Progress{Batch: batchNum, Counts: r.store.Counts(), Percent: percent()})
			if stopped() {
				ch <- Progress{Batch: batchNum, Counts: r.store.Counts(), Percent: percent(), Terminal: true, Outcome: OutcomeCancelled}
				return
			}
		}
	}

	if err := scanner.Err(); err != nil {
		// Partial run: everything appended so far stays valid.
		ch <- Progress{
			Batch:    batchNum,
			Counts:   r.store.Counts(),
			Percent:  percent(),
			Terminal: true,
			Outcome:  OutcomeFailed,
			Err:      fmt.Errorf("read source: %w", err),
		}
		return
	}

	if stopped() {
		ch <- Progress{Batch: batchNum, Counts: r.store.Counts(), Percent: percent(), Terminal: true, Outcome: OutcomeCancelled}
		return
	}

	flush()
	ch <- Progress{Batch: batchNum, Counts: r.store.Counts(), Percent: 100, Terminal: true, Outcome: OutcomeCompleted}
}

// ParseAppend parses from byte offset to the end of the source, using
// startOrdinal as the first line's ordinal, and appends the result to the
// store in chunks of MaxAppendLines. The whole tail is consumed, so the
// monitor can rebase to the file's current size afterwards. It returns the
// number of source lines consumed. Used by live mode after the watcher
// classifies a change as an append.
func (r *Runner) ParseAppend(path string, offset int64, startOrdinal int) (int, error) {
	if r.Running() {
		return 0, errors.New("run active")
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, 0); err != nil {
		return 0, fmt.Errorf("seek source: %w", err)
	}

	var lines []string
	read := 0
	ordinal := startOrdinal
	flush := func() {
		if len(lines) == 0 {
			return
		}
		batch, counts := parseBatchLines(lines, ordinal, r.schema, r.reg)
		r.store.Append(batch, counts)
		ordinal += len(lines)
		read += len(lines)
		lines = lines[:0]
	}

	scanner := newScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) >= MaxAppendLines {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return read, fmt.Errorf("read source: %w", err)
	}
	flush()
	return read, nil
}

func parseBatchLines(lines []string, startOrdinal int, schema entry.Schema, reg *tags.Registry) ([]entry.Entry, store.Counts) {
	var (
		batch  []entry.Entry
		counts store.Counts
	)
	for i, line := range lines {
		counts.Lines++
		e, status := parseLine(line, startOrdinal+i, schema, reg)
		switch status {
		case lineSkipped:
			counts.Skipped++
		case lineBadNumber:
			counts.BadLines++
			batch = append(batch, e)
		default:
			batch = append(batch, e)
		}
	}
	return batch, counts
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, scanBufferInitial), scanBufferMax)
	return scanner
}
