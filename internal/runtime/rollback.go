package runtime

import "context"

// rollback rewinds to the last step executed before current that asked something. It
// restores the state and the pending queue captured right before that step ran, so anything it
// revealed is forgotten and will be re-resolved from the new answer. Passed steps on the way
// are dropped and re-run from the restored queue. Returns false when there is nothing to
// rewind to (back from the first step).
func (c *Controller[S]) rollback(ctx context.Context, current *Step[S]) bool {
	c.current = nil

	i := len(c.history) - 1
	for i >= 0 && c.history[i].passed {
		i--
	}
	if i < 0 {
		return false
	}

	last := c.history[i]
	c.history = c.history[:i]
	c.state = last.state
	c.queue = last.queue

	c.logger.DebugContext(ctx, "rolled back", "from", current.Name, "to", last.step.Name, "history_len", len(c.history))
	return true
}
