// Package tui renders the task table as an interactive terminal view on
// top of a mounted table controller. Every piece of state it displays is
// read back from the controller; the model keeps only cursor position and
// input widgets of its own.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskify/internal/config"
	"taskify/internal/domain"
	"taskify/internal/table"
)

type mode int

const (
	modeList mode = iota
	modeFilter
	modeConfirmDelete
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	priorityStyles = map[domain.Priority]lipgloss.Style{
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		domain.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		domain.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
)

type refreshDoneMsg struct{}

type deleteDoneMsg struct {
	id  int64
	err error
}

type patchDoneMsg struct {
	id  int64
	err error
}

// Model is the bubbletea model wrapping one mounted controller
type Model struct {
	controller *table.Controller

	mode    mode
	cursor  int
	filter  textinput.Model
	spin    spinner.Model
	busy    bool
	status  string
	isError bool
	pending *domain.Task
}

// Run mounts the interactive table on an already mounted controller and
// blocks until the user quits.
func Run(controller *table.Controller) error {
	ti := textinput.New()
	ti.Placeholder = "filter tasks"
	ti.CharLimit = 128
	ti.Width = 40
	ti.SetValue(controller.View().FilterText)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		controller: controller,
		filter:     ti,
		spin:       sp,
		status:     "[/]filter [1-5]sort [z]page size [p]priority [o]status [d]delete [r]refresh [q]quit",
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilterMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case refreshDoneMsg:
		m.busy = false
		m.clampCursor()
		m.setStatus("Refreshed", false)
		return m, nil
	case deleteDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("delete failed: %v", msg.err), true)
			return m, nil
		}
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Deleted task %d", msg.id), false)
		return m, nil
	case patchDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("update failed: %v", msg.err), true)
			return m, nil
		}
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Updated task %d", msg.id), false)
		return m, nil
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		m.mode = modeFilter
		m.filter.Focus()
		return m, textinput.Blink
	case "esc":
		m.filter.SetValue("")
		m.controller.SetFilter("")
		m.clampCursor()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.controller.PageRows())-1 {
			m.cursor++
		}
		return m, nil
	case "left", "h":
		m.controller.PrevPage()
		m.clampCursor()
		return m, nil
	case "right", "l":
		m.controller.NextPage()
		m.clampCursor()
		return m, nil
	case "1", "2", "3", "4", "5":
		columns := []string{
			table.ColumnTitle,
			table.ColumnCategory,
			table.ColumnPriority,
			table.ColumnStatus,
			table.ColumnCreatedAt,
		}
		m.controller.ToggleSort(columns[int(key[0]-'1')])
		return m, nil
	case "z":
		m.controller.SetPageSize(nextPageSize(m.controller.View().PageSize))
		m.clampCursor()
		return m, nil
	case "d":
		if row := m.selectedRow(); row != nil {
			m.pending = row
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "p":
		if row := m.selectedRow(); row != nil {
			return m.startPatch(row.ID, table.ColumnPriority, string(nextPriority(row.Priority)))
		}
		return m, nil
	case "o":
		if row := m.selectedRow(); row != nil {
			return m.startPatch(row.ID, table.ColumnStatus, string(nextStatus(row.Status)))
		}
		return m, nil
	case "r":
		m.busy = true
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			m.controller.Refresh()
			return refreshDoneMsg{}
		})
	}
	return m, nil
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.filter.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.controller.SetFilter(m.filter.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		row := m.pending
		m.pending = nil
		m.mode = modeList
		m.busy = true
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			err := m.controller.DeleteTask(context.Background(), row.ID)
			return deleteDoneMsg{id: row.ID, err: err}
		})
	case "n", "esc":
		m.pending = nil
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) startPatch(id int64, field, value string) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		err := m.controller.PatchField(context.Background(), id, field, value)
		return patchDoneMsg{id: id, err: err}
	})
}

func (m Model) View() string {
	var b strings.Builder

	title := headerStyle.Render("TASKIFY")
	if m.busy {
		title += " " + m.spin.View()
	}
	b.WriteString(title + "\n\n")

	b.WriteString(fmt.Sprintf("Filter: %s\n", m.filter.View()))
	b.WriteString(subtleStyle.Render(m.sortLine()) + "\n\n")

	if m.mode == modeConfirmDelete && m.pending != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete task %d (%s)? [y/n]", m.pending.ID, m.pending.Title)))
		b.WriteString("\n\n")
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-5s %-30s %-12s %-11s %-12s", "ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS")))
	b.WriteString("\n")

	rows := m.controller.PageRows()
	if len(rows) == 0 {
		b.WriteString(subtleStyle.Render("  (no tasks on this page)") + "\n")
	}
	for i, row := range rows {
		cursor := "  "
		line := fmt.Sprintf("%-5d %-30s %-12s %s %s",
			row.ID,
			truncate(row.Title, 30),
			truncate(row.Category, 12),
			renderPriority(row.Priority),
			renderStatus(row.Status),
		)
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			line = cursorStyle.Render(fmt.Sprintf("%-5d %-30s %-12s", row.ID, truncate(row.Title, 30), truncate(row.Category, 12))) +
				" " + renderPriority(row.Priority) + " " + renderStatus(row.Status)
		}
		b.WriteString(cursor + line + "\n")
	}

	view := m.controller.View()
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Page %d of %d | %d tasks | page size %d",
		view.PageIndex+1, m.controller.PageCount(), len(m.controller.FilteredRows()), view.PageSize)))
	b.WriteString("\n")

	if m.isError {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(subtleStyle.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) sortLine() string {
	view := m.controller.View()
	sort := "none"
	if view.Sort.Direction != table.SortNone {
		arrow := "asc"
		if view.Sort.Direction == table.SortDesc {
			arrow = "desc"
		}
		sort = fmt.Sprintf("%s (%s)", view.Sort.Column, arrow)
	}
	return fmt.Sprintf("Sort: %s | [1]title [2]category [3]priority [4]status [5]created", sort)
}

func (m Model) selectedRow() *domain.Task {
	rows := m.controller.PageRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

func (m *Model) clampCursor() {
	rows := m.controller.PageRows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.isError = isError
}

func renderPriority(p domain.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		style = subtleStyle
	}
	return style.Render(fmt.Sprintf("%-11s", p))
}

func renderStatus(s domain.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		style = subtleStyle
	}
	return style.Render(fmt.Sprintf("%-12s", s))
}

// nextPageSize cycles through the enumerated page sizes
func nextPageSize(current int) int {
	for i, size := range config.PageSizes {
		if size == current {
			return config.PageSizes[(i+1)%len(config.PageSizes)]
		}
	}
	return config.PageSizes[0]
}

func nextPriority(current domain.Priority) domain.Priority {
	switch current {
	case domain.PriorityLow:
		return domain.PriorityMedium
	case domain.PriorityMedium:
		return domain.PriorityHigh
	default:
		return domain.PriorityLow
	}
}

func nextStatus(current domain.Status) domain.Status {
	switch current {
	case domain.StatusPending:
		return domain.StatusInProgress
	case domain.StatusInProgress:
		return domain.StatusCompleted
	default:
		return domain.StatusPending
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
