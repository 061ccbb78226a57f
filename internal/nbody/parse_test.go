package nbody

import (
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := `
1 2.5  0.1 0.2 0.3  1.0 2.0 3.0

2 1.0  -1  0   0    0   0   0
`
	sys, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(sys) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(sys))
	}

	if sys[0].Mass != 2.5 {
		t.Errorf("mass: got %v, want 2.5", sys[0].Mass)
	}
	if sys[0].Pos != (Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("pos: got %v", sys[0].Pos)
	}
	if sys[0].Vel != (Vec3{1, 2, 3}) {
		t.Errorf("vel: got %v", sys[0].Vel)
	}
	if sys[1].Pos != (Vec3{-1, 0, 0}) {
		t.Errorf("pos: got %v", sys[1].Pos)
	}
	if sys[0].Acc != (Vec3{}) || sys[0].PrevAcc != (Vec3{}) {
		t.Error("accelerations must be zero-initialized")
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few fields", "1 1.0 0 0 0 0 0"},
		{"too many fields", "1 1.0 0 0 0 0 0 0 0"},
		{"non-numeric mass", "1 abc 0 0 0 0 0 0"},
		{"non-numeric velocity", "1 1.0 0 0 0 0 0 x"},
		{"garbage after valid line", "1 1.0 0 0 0 0 0 0\nnot a record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Error("expected error, got nil")
			}
			if sys != nil {
				t.Error("expected no partial system on error")
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	sys, err := Read(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(sys) != 0 {
		t.Errorf("expected empty system, got %d bodies", len(sys))
	}
}
