// Package driver owns the simulation time loop and diagnostic cadence.
package driver

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nbodylab/internal/energy"
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/integrate"
	"github.com/san-kum/nbodylab/internal/nbody"
)

const DefaultReportEvery = 10

type Config struct {
	Dt             float64
	TEnd           float64
	Workers        int
	ReportEvery    int
	Partition      gravity.Policy
	ClassicKinetic bool
}

func DefaultConfig() Config {
	return Config{
		Dt:          1e-3,
		TEnd:        0.1,
		Workers:     8,
		ReportEvery: DefaultReportEvery,
	}
}

// Diagnostic is one emitted energy record. Drift is the signed relative
// change (Total-Total0)/Total0 against the pre-integration energy.
type Diagnostic struct {
	Step      int     `json:"step"`
	T         float64 `json:"time"`
	Total     float64 `json:"total"`
	Kinetic   float64 `json:"kinetic"`
	Potential float64 `json:"potential"`
	Drift     float64 `json:"drift"`
}

// Observer receives diagnostics as they are produced.
type Observer interface {
	OnReport(d Diagnostic)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Diagnostic)

func (f ObserverFunc) OnReport(d Diagnostic) { f(d) }

type Result struct {
	Reports  []Diagnostic
	Steps    int
	Initial  energy.Report
	Final    energy.Report
	MaxDrift float64
}

// Driver runs the fixed-step loop: one leapfrog step per iteration, an
// energy diagnostic every ReportEvery steps.
type Driver struct {
	cfg       Config
	leap      *integrate.Leapfrog
	monitor   energy.Monitor
	observers []Observer
}

func New(cfg Config) (*Driver, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.ReportEvery == 0 {
		cfg.ReportEvery = DefaultReportEvery
	}
	engine := gravity.New(cfg.Workers)
	engine.Policy = cfg.Partition
	return &Driver{
		cfg:     cfg,
		leap:    integrate.NewLeapfrog(engine),
		monitor: energy.Monitor{Classic: cfg.ClassicKinetic},
	}, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.TEnd <= 0 {
		return fmt.Errorf("t_end must be positive, got %g", cfg.TEnd)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.ReportEvery < 0 {
		return fmt.Errorf("report interval must not be negative, got %d", cfg.ReportEvery)
	}
	return nil
}

func (d *Driver) AddObserver(o Observer) {
	d.observers = append(d.observers, o)
}

// Run integrates sys in place until t >= TEnd. The initial energy report
// (step 0, drift 0) is emitted before the loop; afterwards one diagnostic
// per ReportEvery steps. Cancellation is checked between steps.
func (d *Driver) Run(ctx context.Context, sys nbody.System) (*Result, error) {
	initial := d.monitor.Compute(sys)

	result := &Result{Initial: initial, Final: initial}
	d.emit(result, Diagnostic{
		Total:     initial.Total,
		Kinetic:   initial.Kinetic,
		Potential: initial.Potential,
	})

	d.leap.Prime(sys)

	t := 0.0
	step := 0
	for t < d.cfg.TEnd {
		select {
		case <-ctx.Done():
			result.Steps = step
			return result, ctx.Err()
		default:
		}

		d.leap.Step(sys, d.cfg.Dt)
		t += d.cfg.Dt
		step++

		if step%d.cfg.ReportEvery == 0 {
			rep := d.monitor.Compute(sys)
			result.Final = rep
			d.emit(result, Diagnostic{
				Step:      step,
				T:         t,
				Total:     rep.Total,
				Kinetic:   rep.Kinetic,
				Potential: rep.Potential,
				Drift:     drift(rep.Total, initial.Total),
			})
		}
	}

	result.Steps = step
	result.Final = d.monitor.Compute(sys)
	return result, nil
}

func (d *Driver) emit(result *Result, diag Diagnostic) {
	result.Reports = append(result.Reports, diag)
	if ad := math.Abs(diag.Drift); ad > result.MaxDrift {
		result.MaxDrift = ad
	}
	for _, o := range d.observers {
		o.OnReport(diag)
	}
}

// drift guards the empty-system case where the initial total is zero.
func drift(total, total0 float64) float64 {
	if total0 == 0 {
		return 0
	}
	return (total - total0) / total0
}
