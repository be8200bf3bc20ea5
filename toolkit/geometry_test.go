package toolkit

import "testing"

func TestPhysicalWindowSize(t *testing.T) {
	s := Physical(300, 30)
	if got := s.ToPhysical(2); got != (PhysicalSize{Width: 300, Height: 30}) {
		t.Errorf("ToPhysical = %+v, scale must not apply to physical sizes", got)
	}
	if got := s.ToLogical(2); got != (LogicalSize{Width: 150, Height: 15}) {
		t.Errorf("ToLogical = %+v, want 150x15", got)
	}
}

func TestLogicalWindowSize(t *testing.T) {
	s := Logical(150, 15)
	if got := s.ToPhysical(2); got != (PhysicalSize{Width: 300, Height: 30}) {
		t.Errorf("ToPhysical = %+v, want 300x30", got)
	}
	if got := s.ToLogical(2); got != (LogicalSize{Width: 150, Height: 15}) {
		t.Errorf("ToLogical = %+v, scale must not apply to logical sizes", got)
	}
}

func TestUnitScaleIsIdentity(t *testing.T) {
	if got := Physical(7, 9).ToLogical(1); got != (LogicalSize{Width: 7, Height: 9}) {
		t.Errorf("ToLogical at scale 1 = %+v", got)
	}
	if got := Logical(7, 9).ToPhysical(1); got != (PhysicalSize{Width: 7, Height: 9}) {
		t.Errorf("ToPhysical at scale 1 = %+v", got)
	}
}
