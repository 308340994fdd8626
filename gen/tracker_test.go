package gen

import "testing"

func TestIncludeOnceTracker(t *testing.T) {
	tracker := NewIncludeOnceTracker()

	if !tracker.MarkIfNew("FfiConverterString") {
		t.Error("first mark should report new")
	}
	if tracker.MarkIfNew("FfiConverterString") {
		t.Error("second mark of the same name should report seen")
	}
	if !tracker.MarkIfNew("FfiConverterTypePoint") {
		t.Error("distinct name should report new")
	}
}

// A fresh run starts from nothing; earlier runs must not leak into it.
func TestIncludeOnceTrackerScopedToRun(t *testing.T) {
	first := NewIncludeOnceTracker()
	first.MarkIfNew("FfiConverterString")

	second := NewIncludeOnceTracker()
	if !second.MarkIfNew("FfiConverterString") {
		t.Error("fresh tracker should not remember names from another run")
	}
}
