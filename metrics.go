package toggler

// MetricsHook defines hooks for monitoring arm, cancel and fire events. Hooks
// are called without the [Toggler] lock held, but may be called concurrently
// from timer goroutines.
type MetricsHook interface {
	OnArm(task *Task, slot Slot)
	OnCancel(task *Task)
	OnFire(task *Task)
}
