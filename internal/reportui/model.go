// Package reportui provides the Bubble Tea report viewer.
package reportui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ivrstats/internal/analysis"
	"github.com/verte-zerg/ivrstats/internal/report"
)

const (
	tabOverview = iota
	tabSlots
	tabDays
	tabCost
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea report viewer.
type Model struct {
	report analysis.Report
	source string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	costTable table.Model

	width  int
	height int
}

// NewModel constructs a viewer for a computed report.
func NewModel(rep analysis.Report, source string) *Model {
	m := &Model{
		report: rep,
		source: source,
		tabs:   []string{"Overview", "Time Slots", "Days", "Cost"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.costTable = buildCostTable(rep, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "g", "home":
			if m.activeTab == tabCost {
				m.costTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabCost {
				m.costTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabCost {
				m.costTable, cmd = m.costTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	tabs := m.renderTabs()
	body := m.viewports[m.activeTab].View()
	if m.activeTab == tabCost {
		body = m.costTable.View()
	}
	footer := footerStyle.Render(fmt.Sprintf("%s  ←/→ switch tabs  ↑/↓ scroll  q quit", m.source))
	return lipgloss.JoinVertical(lipgloss.Left, tabs, body, footer)
}

func (m *Model) bodyHeight() int {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	return maxInt(1, m.height-tabsHeight-1)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	height := m.bodyHeight()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = height
	}
	m.costTable.SetWidth(m.width)
	m.costTable.SetHeight(maxInt(1, height-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabCost {
		m.costTable.Focus()
	} else {
		m.costTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabSlots].SetContent(renderSlots(m.report, width))
	m.viewports[tabDays].SetContent(renderDays(m.report, width))
}

func renderOverview(rep analysis.Report, width int) string {
	focus := report.ReductionLabel(rep.Focus.ReductionPercent)
	cards := []string{
		metricCard("Total Calls", fmt.Sprintf("%d", rep.Overall.Total)),
		metricCard("Consent Rate", report.Percent(rep.Overall.Percent())),
		metricCard("Cost per Consented", report.Money(rep.Focus.BaselineCostPerConsented)),
		metricCard(fmt.Sprintf("At %s Reduction", focus), report.Money(rep.Focus.CostPerConsented)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\nRecommendations:\n")
	recs := report.Recommendations(rep)
	if len(recs) == 0 {
		b.WriteString("Not enough data.\n")
	}
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	if rep.UnknownTimes > 0 {
		fmt.Fprintf(&b, "\nUnparsed times: %d\n", rep.UnknownTimes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSlots(rep analysis.Report, width int) string {
	if len(rep.BySlot) == 0 {
		return "No parseable call times."
	}
	bars := make([]report.Bar, 0, len(rep.BySlot))
	for _, s := range rep.BySlot {
		bars = append(bars, report.Bar{Label: s.Bucket.String(), Value: s.Rate.Percent()})
	}
	return renderBars("Consent Rate by Time Slot", bars, width)
}

func renderDays(rep analysis.Report, width int) string {
	bars := make([]report.Bar, 0, len(rep.ByDay))
	for _, d := range rep.ByDay {
		bars = append(bars, report.Bar{Label: d.Day.String(), Value: d.Rate.Percent(), Missing: !d.Rate.Defined()})
	}
	return renderBars("Consent Rate by Day of the Week", bars, width)
}

func renderBars(title string, bars []report.Bar, width int) string {
	var buf bytes.Buffer
	if err := report.BarChart(&buf, title, bars, width, report.Percent, true); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildCostTable(rep analysis.Report, width, height int) table.Model {
	columns := make([]table.Column, 0, len(report.CostHeaders))
	for _, h := range report.CostHeaders {
		columns = append(columns, table.Column{Title: h, Width: maxInt(12, len(h))})
	}
	costRows := report.CostRows(rep.Scenarios)
	rows := make([]table.Row, 0, len(costRows))
	for _, r := range costRows {
		rows = append(rows, table.Row(r))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
