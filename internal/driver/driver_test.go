package driver

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/nbodylab/internal/nbody"
)

func TestRunCadence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TEnd = 0.05 // 50 steps at dt=1e-3

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	var seen []Diagnostic
	d.AddObserver(ObserverFunc(func(diag Diagnostic) {
		seen = append(seen, diag)
	}))

	result, err := d.Run(context.Background(), nbody.Binary())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Steps != 50 {
		t.Errorf("steps: got %d, want 50", result.Steps)
	}

	// Initial report plus one per 10 steps.
	if len(result.Reports) != 6 {
		t.Fatalf("reports: got %d, want 6", len(result.Reports))
	}
	if len(seen) != len(result.Reports) {
		t.Errorf("observer saw %d reports, result holds %d", len(seen), len(result.Reports))
	}

	first := result.Reports[0]
	if first.Step != 0 || first.T != 0 || first.Drift != 0 {
		t.Errorf("initial report not at t=0 with zero drift: %+v", first)
	}

	for i, rep := range result.Reports[1:] {
		wantStep := (i + 1) * 10
		if rep.Step != wantStep {
			t.Errorf("report %d at step %d, want %d", i+1, rep.Step, wantStep)
		}
		if math.Abs(rep.Total-rep.Kinetic-rep.Potential) > 1e-12 {
			t.Errorf("report %d: total is not kinetic+potential: %+v", i+1, rep)
		}
	}
}

func TestDriftAgainstInitialEnergy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TEnd = 0.1

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	result, err := d.Run(context.Background(), nbody.Binary())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	total0 := result.Initial.Total
	last := result.Reports[len(result.Reports)-1]
	want := (last.Total - total0) / total0
	if last.Drift != want {
		t.Errorf("drift %v, want %v", last.Drift, want)
	}
	if result.MaxDrift > 1e-3 {
		t.Errorf("max drift %.3e unexpectedly large for a circular orbit", result.MaxDrift)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, TEnd: 1, Workers: 1}},
		{"negative dt", Config{Dt: -1e-3, TEnd: 1, Workers: 1}},
		{"zero t_end", Config{Dt: 1e-3, TEnd: 0, Workers: 1}},
		{"no workers", Config{Dt: 1e-3, TEnd: 1, Workers: 0}},
		{"negative report interval", Config{Dt: 1e-3, TEnd: 1, Workers: 1, ReportEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEmptySystem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TEnd = 0.01

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	result, err := d.Run(context.Background(), nbody.System{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, rep := range result.Reports {
		if rep.Total != 0 || rep.Drift != 0 {
			t.Errorf("empty system report not zero: %+v", rep)
		}
	}
}

func TestCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TEnd = 1000 // would run far too long without cancellation

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := d.Run(ctx, nbody.Binary())
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
}
