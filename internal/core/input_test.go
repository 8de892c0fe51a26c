package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionPlace)
	if !f.Has(ActionPlace) {
		t.Error("NewInputFrame should set the given actions")
	}
	if f.Has(ActionStart) {
		t.Error("Has(ActionStart) = true, expected false")
	}

	f.Set(ActionStart)
	if !f.Has(ActionStart) {
		t.Error("Set should mark the action")
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear() left %d actions", len(f.Actions))
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionPlace, "Place"},
		{ActionPowerUpGhost, "PowerUpGhost"},
		{Action(999), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
