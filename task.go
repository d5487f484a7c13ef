package toggler

// Task is a named callback scheduled by a [Toggler]. Its identity is the
// pointer returned by [NewTask]: two tasks wrapping the same function are
// distinct, and a task keeps its identity for as long as it is referenced.
//
// A Task should belong to exactly one pair. Every piece of [Toggler] state is
// keyed by the task alone, so passing the same Task in two different pairs
// makes those pairs share its hot-set membership and its pending timer.
type Task struct {
	name string
	fn   func()
}

// NewTask returns a new [Task] that runs fn when it fires. The name is only
// used to label logs and metrics.
func NewTask(name string, fn func()) *Task {
	return &Task{name: name, fn: fn}
}

// Name returns the name the [Task] was created with.
func (t *Task) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// String implements [fmt.Stringer].
func (t *Task) String() string {
	return t.Name()
}

// Run invokes the task's callback. A task created with a nil callback panics
// here, not when it is scheduled.
func (t *Task) Run() {
	t.fn()
}
