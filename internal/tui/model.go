// Package tui implements the interactive rolling-window projection viewer.
// It pulls days from the projector lazily as the user scrolls, so the
// window can extend indefinitely.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/model"
	"github.com/ledgerflow/ledgerflow/internal/projection"
)

const (
	// initialDays is how much of the projection is materialized up front.
	initialDays = 90
	// extendBy is pulled from the projector when the cursor nears the end.
	extendBy = 30
	// extendMargin is how close to the end the cursor may get before more
	// days are pulled.
	extendMargin = 15
)

// Model is the bubbletea model for the flow view.
type Model struct {
	projector *projection.Projector
	table     table.Model
	rows      []table.Row
	lowWater  decimal.Decimal
	height    int
}

// New builds the flow view over a projector. The projector is consumed; it
// must be freshly constructed for this view.
func New(p *projection.Projector, lowWater decimal.Decimal) Model {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Date", Width: 12},
		{Title: "Balance", Width: 14},
		{Title: "Transactions", Width: 50},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(cli.PrimaryColor).
		Bold(true)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithStyles(styles),
	)

	m := Model{
		projector: p,
		table:     t,
		lowWater:  lowWater,
	}
	m.extend(initialDays)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-4, 3))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	// Keep the window ahead of the cursor.
	if m.table.Cursor() >= len(m.rows)-extendMargin {
		m.extend(extendBy)
	}

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Cash Flow"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("↑/↓ scroll · scrolling down extends the window · q quit"))
	return b.String()
}

// extend pulls n more days from the projector into the table.
func (m *Model) extend(n int) {
	for _, step := range m.projector.Take(n) {
		m.rows = append(m.rows, stepRow(step, m.lowWater))
	}
	m.table.SetRows(m.rows)
}

func stepRow(step projection.Step, lowWater decimal.Decimal) table.Row {
	marker := ""
	switch {
	case step.Balance.IsNegative():
		marker = "‼"
	case step.Balance.LessThan(lowWater):
		marker = "!"
	}

	descriptions := make([]string, 0, len(step.Transactions))
	for _, txn := range step.Transactions {
		descriptions = append(descriptions, fmt.Sprintf("%s %s", txn.Description, txn.Amount.StringFixed(2)))
	}

	return table.Row{
		marker,
		model.FormatDate(step.Date),
		step.Balance.StringFixed(2),
		strings.Join(descriptions, ", "),
	}
}
