package toggler

// Activators returns the number of registered activators.
func (t *Toggler) Activators() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.activators)
}

// Cancellers returns the number of tasks with a stored canceller.
func (t *Toggler) Cancellers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cancellers)
}

// Inflight returns the number of committed fires still owed to task.
func (t *Toggler) Inflight(task *Task) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight[task]
}
