// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/appearance"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/skymap"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/version"
)

// Screen layout, in terminal rows.
const (
	headerLines = 2 // title + blank
	footerLines = 2 // info + help
	skyTop      = headerLines + 1
)

// AnimTickMsg drives the menu hover animation and the spinner.
type AnimTickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	log   *logging.Logger

	// UI state
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	sky  SkyViewModel
	menu MenuModel
}

// New creates a new root UI model.
func New(mgr *state.Manager, r *skymap.Renderer, log *logging.Logger) Model {
	return Model{
		state: mgr,
		log:   log,
		sky:   NewSkyViewModel(mgr, r, log).SetTop(skyTop),
		menu:  NewMenuModel().SetTop(skyTop),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.sky.Searching() {
			cmds = append(cmds, m.updateSky(msg))
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "m":
			m.menu = m.menu.Toggle()
		default:
			cmds = append(cmds, m.updateSky(msg))
		}

	case tea.MouseMsg:
		var clicked int
		m.menu, clicked = m.menu.Update(msg)
		if clicked >= 0 {
			item := m.menu.Item(clicked)
			m.state.Apply(func(c state.Config, v state.View) state.View {
				return c.SetColorMode(v, item.Mode)
			})
			m.log.Debug("menu: %s", item.Title)
		}
		if !m.menu.Covers(msg) {
			cmds = append(cmds, m.updateSky(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sky = m.sky.SetSize(msg.Width, msg.Height-headerLines-footerLines)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.menu = m.menu.Step(time.Time(msg))

	default:
		cmds = append(cmds, m.updateSky(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateSky(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.sky, cmd = m.sky.Update(msg)
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := m.sky.Render(m.menu.Draw)
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := "✶ ls-skymap"
	var b strings.Builder
	b.WriteString("  ")
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(muted.Render(fmt.Sprintf("  stereographic star map · v%s", version.Version)))
	b.WriteString("\n")
	return b.String()
}

// Logo gradient stops: blue, purple, magenta, pink.
var gradientStops = []appearance.RGB{
	{R: 59, G: 130, B: 246},
	{R: 139, G: 92, B: 246},
	{R: 217, G: 70, B: 239},
	{R: 236, G: 72, B: 153},
}

// gradientColor returns a hex color for a position in the title gradient.
func gradientColor(col, width int) string {
	if width <= 1 {
		return gradientStops[0].Hex()
	}
	pos := float64(col) / float64(width-1) * float64(len(gradientStops)-1)
	i := int(pos)
	if i >= len(gradientStops)-1 {
		return gradientStops[len(gradientStops)-1].Hex()
	}
	return gradientStops[i].Blend(gradientStops[i+1], pos-float64(i)).Hex()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))

	info := m.menu.Info()
	if info == "" && m.menu.Visible() {
		info = dimStyle.Render("Click a menu box to learn what it means and color stars by it.")
	} else {
		info = infoStyle.Render(info)
	}

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)])

	help := dimStyle.Render("wasd/arrows: pan | +/- wheel: zoom | c: color | [/]: mag | l: labels | g: go to | b: back | right-click: center | r: reset | o: sun | m: menu | q: quit")

	return "  " + info + "\n  " + spinner + "  " + help
}

func animTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
