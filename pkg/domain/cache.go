package domain

// StepOffset is an additive [current, total] correction applied to a controller's counters.
type StepOffset struct {
	Current int
	Total   int
}

// Add shifts both components by n.
func (o StepOffset) Add(n int) StepOffset {
	return StepOffset{Current: o.Current + n, Total: o.Total + n}
}

// StepDisplay is the "step X of Y" pair shown to the user.
type StepDisplay struct {
	Current int
	Total   int
}

// StepCache is per-property scratch data kept for the lifetime of a wizard.
// Prompters may keep extra fields in Extra.
type StepCache struct {
	Picked    any
	HasPicked bool
	// Offset is the running step offset saved when the step was last prompted.
	Offset *StepOffset
	Extra  map[string]any
}

// NewStepCache returns an empty cache.
func NewStepCache() *StepCache {
	return &StepCache{Extra: make(map[string]any)}
}

// SetPicked records the last accepted answer.
func (c *StepCache) SetPicked(v any) {
	c.Picked = v
	c.HasPicked = true
}

// ClearOffset forgets the saved offset so re-entry starts counting fresh.
func (c *StepCache) ClearOffset() {
	c.Offset = nil
}

// Picked returns the cached answer of c as a T.
func Picked[T any](c *StepCache) (T, bool) {
	var zero T
	if c == nil || !c.HasPicked {
		return zero, false
	}
	v, ok := c.Picked.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
