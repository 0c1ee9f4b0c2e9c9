package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DannyLionel/modsim/internal/sim"
	"github.com/DannyLionel/modsim/internal/viz"
)

const (
	chartWidth    = 70
	chartHeight   = 12
	historyLimit  = 600
	framesPerSec  = 30
	targetSeconds = 10 // wall time a full run should roughly take
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation inside the bubbletea update loop and renders a
// temperature sparkline with a stats pane.
type Model struct {
	sys        sim.System
	integrator sim.Integrator
	cfg        sim.Config
	initial    sim.State

	state   sim.State
	t       float64
	step    int
	steps   int
	perTick int
	history []float64
	running bool
	name    string
}

func NewModel(sys sim.System, integrator sim.Integrator, x0 sim.State, cfg sim.Config, name string) Model {
	steps := cfg.Steps()
	perTick := steps / (framesPerSec * targetSeconds)
	if perTick < 1 {
		perTick = 1
	}

	return Model{
		sys:        sys,
		integrator: integrator,
		cfg:        cfg,
		initial:    x0.Clone(),
		state:      x0.Clone(),
		t:          cfg.Start,
		steps:      steps,
		perTick:    perTick,
		history:    append(make([]float64, 0, historyLimit), x0[0]),
		running:    true,
		name:       name,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.step < m.steps {
				m.running = !m.running
			}
		case "r":
			m.state = m.initial.Clone()
			m.t = m.cfg.Start
			m.step = 0
			m.history = m.history[:0]
			m.history = append(m.history, m.state[0])
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.perTick && m.step < m.steps; i++ {
				m.state = m.integrator.Step(m.sys, m.state, m.t, m.cfg.Dt)
				m.step++
				m.t = m.cfg.Start + float64(m.step)*m.cfg.Dt
				m.history = append(m.history, m.state[0])
				if len(m.history) > historyLimit {
					m.history = m.history[1:]
				}
			}
			if m.step >= m.steps {
				m.running = false
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("modsim live — %s", m.name)))
	b.WriteString("\n")
	b.WriteString(chartStyle.Render(viz.Sparkline(m.history, chartWidth, chartHeight, "temperature")))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("time", fmt.Sprintf("%.2f / %.2f", m.t, m.cfg.End))
	row("temp", fmt.Sprintf("%.3f", m.state[0]))
	if len(m.state) > 1 {
		row("temp2", fmt.Sprintf("%.3f", m.state[1]))
	}
	row("step", fmt.Sprintf("%d / %d", m.step, m.steps))

	if !m.running && m.step >= m.steps {
		b.WriteString(doneStyle.Render("run complete"))
		b.WriteString("\n")
	} else if !m.running {
		b.WriteString(doneStyle.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

// Run blocks until the user quits the live view.
func Run(sys sim.System, integrator sim.Integrator, x0 sim.State, cfg sim.Config, name string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if v, ok := sys.(sim.Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	p := tea.NewProgram(NewModel(sys, integrator, x0, cfg, name))
	_, err := p.Run()
	return err
}
