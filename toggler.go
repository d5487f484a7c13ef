package toggler

import (
	"sync"

	"github.com/rs/zerolog"
)

// Toggler alternates between the two tasks of a pair. Each call to
// [Toggler.Schedule] arms whichever task of the pair was not armed last and
// cancels the pending fire of the other, so of a burst of calls only the
// task armed by the final call runs, once its slot's delay has settled.
//
// The first task of a pair is always armed in slot one and the second in slot
// two, each slot debouncing with its own delay. Slots debounce per task, so
// disjoint pairs served by one Toggler do not disturb each other. A pair that
// has never been scheduled arms its first task.
type Toggler struct {
	mu           sync.Mutex
	log          zerolog.Logger
	metrics      MetricsHook
	panicHandler PanicHandler

	slots [2]Scheduler

	// recent holds the most recently armed task of each pair, activators the
	// stable callback handed to the slot schedulers for each task, and
	// cancellers the handle of every task with a pending fire.
	recent     map[*Task]struct{}
	activators map[*Task]func()
	cancellers map[*Task]CancelFunc

	// inflight counts fires that were already committed when Schedule tried
	// to cancel them. Such a fire must not clear a canceller installed after
	// it was committed.
	inflight map[*Task]int
}

// New creates a new [Toggler] with the given options.
func New(opts ...Option) *Toggler {
	o := NewOptions(opts...)

	one, two := max(o.TaskOneDelay, 0), max(o.TaskTwoDelay, 0)

	t := &Toggler{
		log:          o.Logger.With().Str("component", "toggler").Logger(),
		metrics:      o.Metrics,
		panicHandler: o.PanicHandler,
		recent:       make(map[*Task]struct{}),
		activators:   make(map[*Task]func()),
		cancellers:   make(map[*Task]CancelFunc),
		inflight:     make(map[*Task]int),
	}
	factory := o.SchedulerFactory
	if factory == nil {
		factory = debouncerFactory(o.Logger.With().Str("component", "debouncer").Logger())
	}
	t.slots[0] = factory(one, 0, false)
	t.slots[1] = factory(two, 0, false)

	t.log.Debug().Dur("task_one_delay", one).Dur("task_two_delay", two).Msg("toggler: created")

	return t
}

// Schedule signals that one of a and b should eventually run. If a was the
// task armed by the previous call for this pair, b is armed in slot two and
// a's pending fire is canceled. Otherwise a is armed in slot one and b's
// pending fire is canceled. Arming a task that is already pending restarts
// its delay.
//
// Schedule is safe for concurrent use, and tasks may call it when they run.
func (t *Toggler) Schedule(a, b *Task) {
	t.mu.Lock()
	t.register(a)
	t.register(b)

	var ev armEvent
	if _, hot := t.recent[a]; hot {
		ev = t.arm(SlotTwo, b, a)
	} else {
		ev = t.arm(SlotOne, a, b)
	}
	t.mu.Unlock()

	if t.metrics != nil {
		if ev.canceled {
			t.metrics.OnCancel(ev.other)
		}
		t.metrics.OnArm(ev.task, ev.slot)
	}
}

// Pending reports whether task has a fire pending.
func (t *Toggler) Pending(task *Task) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.cancellers[task]
	return ok
}

// Hot reports whether task was the one armed by the latest [Toggler.Schedule]
// call of its pair.
func (t *Toggler) Hot(task *Task) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.recent[task]
	return ok
}

type armEvent struct {
	task     *Task
	other    *Task
	slot     Slot
	canceled bool
}

// register installs the activator for task the first time it is seen. Must be
// called with t.mu held.
func (t *Toggler) register(task *Task) {
	if _, ok := t.activators[task]; ok {
		return
	}
	t.activators[task] = func() { t.activate(task) }
}

// arm makes task the hot task of its pair, cancels other's pending fire and
// arms task in slot. Must be called with t.mu held.
func (t *Toggler) arm(slot Slot, task, other *Task) armEvent {
	ev := armEvent{task: task, other: other, slot: slot}

	delete(t.recent, other)
	t.recent[task] = struct{}{}

	if cancel, ok := t.cancellers[other]; ok {
		if !cancel() {
			// Too late, the fire is already on its way.
			t.inflight[other]++
		}
		delete(t.cancellers, other)
		ev.canceled = true

		t.log.Debug().Str("task", other.Name()).Msg("toggler: canceled pending task")
	}

	t.cancellers[task] = t.slots[slot-1](task, t.activators[task])

	t.log.Debug().Str("task", task.Name()).Stringer("slot", slot).Msg("toggler: armed task")

	return ev
}

func (t *Toggler) activate(task *Task) {
	t.mu.Lock()
	if n := t.inflight[task]; n > 0 {
		if n == 1 {
			delete(t.inflight, task)
		} else {
			t.inflight[task] = n - 1
		}
	} else {
		delete(t.cancellers, task)
	}
	t.mu.Unlock()

	t.log.Debug().Str("task", task.Name()).Msg("toggler: firing task")

	if t.metrics != nil {
		t.metrics.OnFire(task)
	}

	t.run(task)
}

func (t *Toggler) run(task *Task) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		t.log.Error().Str("task", task.Name()).Interface("panic", r).Msg("toggler: task panicked")

		if t.panicHandler == nil {
			panic(r)
		}
		t.panicHandler(task, r)
	}()

	task.Run()
}
