package toggler

import (
	"time"

	"github.com/rs/zerolog"
)

// Options holds configuration options for the [Toggler].
type Options struct {
	TaskOneDelay     time.Duration
	TaskTwoDelay     time.Duration
	SchedulerFactory SchedulerFactory
	Logger           zerolog.Logger
	Metrics          MetricsHook
	PanicHandler     PanicHandler
}

// PanicHandler receives the value recovered from a panicking [Task]. When set,
// the panic is considered handled and does not propagate further.
type PanicHandler func(task *Task, v any)

// NewOptions creates options with defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		TaskOneDelay: DefaultDelay,
		TaskTwoDelay: DefaultDelay,
		Logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option is a function that configures [Options].
type Option func(*Options)

// WithDelays sets the settling delay of both slots.
func WithDelays(one, two time.Duration) Option {
	return func(o *Options) {
		o.TaskOneDelay = one
		o.TaskTwoDelay = two
	}
}

// WithTaskOneDelay sets the settling delay of the first slot.
func WithTaskOneDelay(d time.Duration) Option {
	return func(o *Options) {
		o.TaskOneDelay = d
	}
}

// WithTaskTwoDelay sets the settling delay of the second slot.
func WithTaskTwoDelay(d time.Duration) Option {
	return func(o *Options) {
		o.TaskTwoDelay = d
	}
}

// WithConfig applies the delays present in cfg. Delays left unset keep their
// current value.
func WithConfig(cfg Config) Option {
	return func(o *Options) {
		if cfg.TaskOneDelay != nil {
			o.TaskOneDelay = cfg.TaskOneDelay.Duration
		}
		if cfg.TaskTwoDelay != nil {
			o.TaskTwoDelay = cfg.TaskTwoDelay.Duration
		}
	}
}

// WithSchedulerFactory sets the factory used to build the slot schedulers. A
// nil factory is ignored. Without one, each slot gets a [Debouncer] that logs
// to the [Toggler]'s logger.
func WithSchedulerFactory(f SchedulerFactory) Option {
	return func(o *Options) {
		if f != nil {
			o.SchedulerFactory = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetricsHook sets the metrics hook for the [Toggler].
func WithMetricsHook(hook MetricsHook) Option {
	return func(o *Options) {
		o.Metrics = hook
	}
}

// WithPanicHandler sets the handler called when a task panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(o *Options) {
		o.PanicHandler = h
	}
}
