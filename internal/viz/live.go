package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/asvsim/internal/agent"
	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model plays one chase episode at a time.
type Model struct {
	env        *env.Env
	agent      agent.Agent
	maxSteps   int
	frame      time.Duration
	canvas     *Canvas
	view       Viewport
	obs        env.Observation
	last       env.Transition
	action     asv.Vector2
	steps      int
	episode    int
	cumReward  float64
	rewardHist []float64
	running    bool
	over       bool
}

func NewModel(e *env.Env, ag agent.Agent, maxSteps, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	canvas := NewCanvas(width, height)
	m := Model{
		env:        e,
		agent:      ag,
		maxSteps:   maxSteps,
		frame:      time.Second / time.Duration(fps),
		canvas:     canvas,
		view:       NewViewport(e.Config().Bounds, canvas),
		rewardHist: make([]float64, 0, historyCapacity),
		running:    true,
	}
	m.obs = e.Reset()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.over {
		return
	}
	m.action = m.agent.Act(m.obs)
	tr, err := m.env.Step(m.action)
	if err != nil {
		m.over = true
		return
	}
	m.last = tr
	m.obs = tr.Observation
	m.steps++
	m.cumReward += tr.Reward

	m.rewardHist = append(m.rewardHist, tr.Reward)
	if len(m.rewardHist) > historyCapacity {
		m.rewardHist = m.rewardHist[1:]
	}
	if tr.Done || m.steps >= m.maxSteps {
		m.over = true
	}
}

func (m *Model) reset() {
	m.obs = m.env.Reset()
	m.last = env.Transition{}
	m.action = asv.Vector2{}
	m.steps = 0
	m.cumReward = 0
	m.rewardHist = m.rewardHist[:0]
	m.over = false
	m.episode++
}

func (m Model) Steps() int         { return m.steps }
func (m Model) Episode() int       { return m.episode }
func (m Model) CumReward() float64 { return m.cumReward }
func (m Model) Over() bool         { return m.over }

func (m Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawFrame()
	targets, vehicles := m.env.History()
	m.canvas.DrawTrail(m.view, targets)
	m.canvas.DrawTrail(m.view, vehicles)
	if len(targets) > 0 {
		x, y := m.view.Project(targets[len(targets)-1])
		m.canvas.Mark(x, y, '◎')
	}
	if len(vehicles) > 0 {
		x, y := m.view.Project(vehicles[len(vehicles)-1])
		m.canvas.Mark(x, y, '▲')
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	cfg := m.env.Config()
	s.WriteString(headerStyle.Render(fmt.Sprintf("ASV CHASE · %s", strings.ToUpper(string(cfg.ActionType)))) + "\n")

	status := "RUNNING"
	switch {
	case m.over && m.last.Done:
		status = doneStyle.Render("OUT OF BOUNDS")
	case m.over:
		status = doneStyle.Render("EPISODE OVER")
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.rewardHist) > 1 {
		chart := asciigraph.Plot(m.rewardHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("reward"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	st := m.env.VehicleState()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Episode", fmt.Sprintf("%d", m.episode))
	row("Time", fmt.Sprintf("%.2fs", float64(m.steps)*cfg.Interval))
	row("Step", fmt.Sprintf("%d/%d", m.steps, m.maxSteps))
	row("Position", fmt.Sprintf("(%.1f, %.1f)", st.Position.X, st.Position.Y))
	row("Velocity", fmt.Sprintf("(%.1f, %.1f)", st.Velocity.X, st.Velocity.Y))
	row("Command", fmt.Sprintf("(%.1f, %.1f)", m.action.X, m.action.Y))
	row("Offset", fmt.Sprintf("%.2f", m.obs.Offset.Norm()))
	row("Reward", fmt.Sprintf("%.4f", m.last.Reward))
	row("Total", fmt.Sprintf("%.4f", m.cumReward))

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step R:Reset Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
