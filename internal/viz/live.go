// Package viz renders a live terminal view of a running simulation.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodylab/internal/driver"
	"github.com/san-kum/nbodylab/internal/energy"
	"github.com/san-kum/nbodylab/internal/gravity"
	"github.com/san-kum/nbodylab/internal/integrate"
	"github.com/san-kum/nbodylab/internal/nbody"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	stepsPerFrame   = 10
	historyCapacity = 600
	trailCapacity   = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type point struct{ x, y int }

// Model steps the real leapfrog/force core on each tick and renders body
// positions (XY projection) with trails plus an energy drift sparkline.
type Model struct {
	sys      nbody.System
	initial  nbody.System
	leap     *integrate.Leapfrog
	monitor  energy.Monitor
	cfg      driver.Config
	scenario string

	t       float64
	step    int
	running bool
	total0  float64

	canvas    *Canvas
	trails    []point
	driftHist []float64
	scale     float64
}

func NewModel(sys nbody.System, cfg driver.Config, scenario string) Model {
	engine := gravity.New(cfg.Workers)
	engine.Policy = cfg.Partition
	leap := integrate.NewLeapfrog(engine)
	monitor := energy.Monitor{Classic: cfg.ClassicKinetic}

	leap.Prime(sys)
	total0 := monitor.Compute(sys).Total

	return Model{
		sys:       sys,
		initial:   sys.Clone(),
		leap:      leap,
		monitor:   monitor,
		cfg:       cfg,
		scenario:  scenario,
		running:   true,
		total0:    total0,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		trails:    make([]point, 0, trailCapacity),
		driftHist: make([]float64, 0, historyCapacity),
		scale:     float64(canvasHeight*4) / 4.0,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.scale *= 1.25
		case "-", "_":
			m.scale /= 1.25
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < stepsPerFrame; i++ {
		m.leap.Step(m.sys, m.cfg.Dt)
		m.t += m.cfg.Dt
		m.step++
	}

	rep := m.monitor.Compute(m.sys)
	d := 0.0
	if m.total0 != 0 {
		d = (rep.Total - m.total0) / m.total0
	}
	m.driftHist = append(m.driftHist, d)
	if len(m.driftHist) > historyCapacity {
		m.driftHist = m.driftHist[1:]
	}

	cx, cy := canvasWidth, canvasHeight*2 // dot-space center
	for i := range m.sys {
		px := cx + int(m.sys[i].Pos.X*m.scale)
		py := cy - int(m.sys[i].Pos.Y*m.scale)
		m.trails = append(m.trails, point{px, py})
	}
	if len(m.trails) > trailCapacity {
		m.trails = m.trails[len(m.trails)-trailCapacity:]
	}
}

func (m *Model) reset() {
	m.sys = m.initial.Clone()
	m.leap.Prime(m.sys)
	m.t = 0
	m.step = 0
	m.trails = m.trails[:0]
	m.driftHist = m.driftHist[:0]
	m.total0 = m.monitor.Compute(m.sys).Total
}

func (m *Model) draw() {
	m.canvas.Clear()
	cx, cy := canvasWidth, canvasHeight*2 // dot-space center

	for _, pt := range m.trails {
		m.canvas.Set(pt.x, pt.y)
	}
	for i := range m.sys {
		px := cx + int(m.sys[i].Pos.X*m.scale)
		py := cy - int(m.sys[i].Pos.Y*m.scale)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				m.canvas.Set(px+dx, py+dy)
			}
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	rep := m.monitor.Compute(m.sys)
	d := 0.0
	if m.total0 != 0 {
		d = (rep.Total - m.total0) / m.total0
	}

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.driftHist) > 1 {
		chart := asciigraph.Plot(m.driftHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("energy drift"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.sys))) + "\n")
	s.WriteString(labelStyle.Render("Workers") + valueStyle.Render(fmt.Sprintf("%d (%s)", m.cfg.Workers, m.cfg.Partition)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6f", rep.Total)) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.6f", rep.Kinetic)) + "\n")
	s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.6f", rep.Potential)) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.3e", d)) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset +/-:Zoom Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
