package toggler

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CancelFunc prevents a callback handed to a [Scheduler] from running. It
// reports false only when the callback had already been committed to run, in
// which case it is too late to stop it. Calling it on a callback that was
// superseded or canceled before is a no-op that reports true.
type CancelFunc func() bool

// Scheduler arranges for fn to run once the scheduler's delay has elapsed
// since the last call made with the same key, superseding any callback still
// pending for that key. Callbacks scheduled under other keys are left alone.
// The returned [CancelFunc] cancels this call only.
//
// A Scheduler must not run fn on the calling goroutine.
type Scheduler func(key any, fn func()) CancelFunc

// SchedulerFactory builds a [Scheduler] with the given settling delay, max
// wait bound (zero for none) and leading edge behaviour.
type SchedulerFactory func(delay, maxWait time.Duration, leading bool) Scheduler

// DefaultSchedulerFactory builds schedulers backed by a [Debouncer].
func DefaultSchedulerFactory(delay, maxWait time.Duration, leading bool) Scheduler {
	return NewDebouncer(delay, maxWait, leading).ScheduleFor
}

// debouncerFactory is like DefaultSchedulerFactory but logs to l.
func debouncerFactory(l zerolog.Logger) SchedulerFactory {
	return func(delay, maxWait time.Duration, leading bool) Scheduler {
		d := NewDebouncer(delay, maxWait, leading)
		d.SetLogger(l)
		return d.ScheduleFor
	}
}

type callState int

const (
	callPending callState = iota
	callSuperseded
	callCanceled
	callFired
)

type call struct {
	fn    func()
	state callState
}

// window is the debounce state of a single key, alive from the first call
// of a burst until the flush that ends it.
type window struct {
	key any

	// gen invalidates quiet timers replaced by a later call.
	gen      uint64
	timer    *time.Timer
	maxTimer *time.Timer
	pending  *call
}

// defaultKey is the key used by [Debouncer.Schedule].
type defaultKey struct{}

// Debouncer runs the most recently scheduled callback of each key once calls
// for that key have been quiet for its delay.
//
// With a max wait set, a burst of calls can delay the pending callback by at
// most that long. With leading edge enabled, the first call of a quiet period
// runs its callback straight away and the calls that follow within the delay
// are treated as trailing calls.
type Debouncer struct {
	mu      sync.Mutex
	log     zerolog.Logger
	delay   time.Duration
	maxWait time.Duration
	leading bool
	windows map[any]*window
}

// NewDebouncer creates a new [Debouncer]. Negative durations are treated as
// zero.
func NewDebouncer(delay, maxWait time.Duration, leading bool) *Debouncer {
	return &Debouncer{
		log:     zerolog.Nop(),
		delay:   max(delay, 0),
		maxWait: max(maxWait, 0),
		leading: leading,
		windows: make(map[any]*window),
	}
}

// SetLogger sets the logger used for debug output.
func (d *Debouncer) SetLogger(l zerolog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = l
}

// Schedule arranges for fn to run after the delay, superseding the callback
// pending from any previous call to Schedule.
func (d *Debouncer) Schedule(fn func()) CancelFunc {
	return d.ScheduleFor(defaultKey{}, fn)
}

// ScheduleFor arranges for fn to run after the delay, superseding only the
// callback pending from a previous call with the same key. The key must be
// comparable.
func (d *Debouncer) ScheduleFor(key any, fn func()) CancelFunc {
	c := &call{fn: fn}

	d.mu.Lock()
	defer d.mu.Unlock()

	w, open := d.windows[key]
	if !open {
		w = &window{key: key}
		d.windows[key] = w
		if d.maxWait > 0 {
			w.maxTimer = time.AfterFunc(d.maxWait, func() { d.fireMax(w) })
		}
	}

	if w.pending != nil {
		w.pending.state = callSuperseded
		w.pending = nil
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(d.delay, func() { d.fireQuiet(w, gen) })

	if d.leading && !open {
		c.state = callFired
		d.log.Debug().Str("key", fmt.Sprint(key)).Dur("delay", d.delay).Msg("debouncer: leading edge")
		go fn()
	} else {
		w.pending = c
	}

	return func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()

		switch c.state {
		case callPending:
			c.state = callCanceled
			if w.pending == c {
				w.pending = nil
			}
			d.log.Debug().Str("key", fmt.Sprint(key)).Msg("debouncer: canceled callback")
			return true
		case callFired:
			return false
		default:
			return true
		}
	}
}

// Stop drops every pending callback and ends all bursts.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, w := range d.windows {
		if w.pending != nil {
			w.pending.state = callCanceled
			w.pending = nil
		}
		d.end(w)
	}
}

func (d *Debouncer) fireQuiet(w *window, gen uint64) {
	d.mu.Lock()
	if d.windows[w.key] != w || gen != w.gen {
		d.mu.Unlock()
		return
	}
	d.flush(w)
}

func (d *Debouncer) fireMax(w *window) {
	d.mu.Lock()
	if d.windows[w.key] != w {
		d.mu.Unlock()
		return
	}
	d.log.Debug().Str("key", fmt.Sprint(w.key)).Dur("max_wait", d.maxWait).Msg("debouncer: max wait reached")
	d.flush(w)
}

// flush ends the burst of w and runs its pending callback. It must be called
// with d.mu held and releases it before running the callback.
func (d *Debouncer) flush(w *window) {
	c := w.pending
	w.pending = nil
	d.end(w)

	if c == nil || c.state != callPending {
		d.mu.Unlock()
		return
	}
	c.state = callFired
	d.log.Debug().Str("key", fmt.Sprint(w.key)).Msg("debouncer: firing callback")
	d.mu.Unlock()

	c.fn()
}

func (d *Debouncer) end(w *window) {
	delete(d.windows, w.key)
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.maxTimer != nil {
		w.maxTimer.Stop()
		w.maxTimer = nil
	}
}
