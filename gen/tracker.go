package gen

// IncludeOnceTracker records which helper blocks have already been emitted
// during one generation run, so a type referenced from many call sites gets
// exactly one converter definition. It is scoped to a single run; a fresh
// run starts with a fresh tracker.
type IncludeOnceTracker struct {
	names map[string]bool
}

// NewIncludeOnceTracker returns an empty tracker.
func NewIncludeOnceTracker() *IncludeOnceTracker {
	return &IncludeOnceTracker{names: make(map[string]bool)}
}

// MarkIfNew returns true exactly once per distinct name, false on every
// subsequent call with the same name.
func (t *IncludeOnceTracker) MarkIfNew(name string) bool {
	if t.names[name] {
		return false
	}
	t.names[name] = true
	return true
}
