package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// historyItem adapts one record to the bubbles list.
type historyItem struct {
	rec result.TestResult
}

func (i historyItem) Title() string {
	return fmt.Sprintf("%s %s", statusGlyph(i.rec.Status), i.rec.TestName)
}

func (i historyItem) Description() string {
	desc := fmt.Sprintf("%s · %.2fs · %s",
		i.rec.StartTime.Format("2006-01-02 15:04:05"),
		i.rec.Duration,
		strings.ToUpper(string(i.rec.Status)))
	if len(i.rec.Tags) > 0 {
		desc += " · " + strings.Join(i.rec.Tags, ",")
	}
	return desc
}

func (i historyItem) FilterValue() string {
	return i.rec.TestName + " " + strings.Join(i.rec.Tags, " ")
}

// HistoryModel is the Bubble Tea model for the interactive history
// browser: a record list with a markdown detail pane.
type HistoryModel struct {
	list       list.Model
	viewport   viewport.Model
	showDetail bool
	ready      bool
}

// NewHistoryModel builds the browser over a history snapshot
// (newest-first, as returned by the history scanner).
func NewHistoryModel(records []result.TestResult) HistoryModel {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = historyItem{rec: r}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "执行历史"
	return HistoryModel{list: l}
}

func (m HistoryModel) Init() tea.Cmd { return nil }

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		m.viewport = viewport.New(msg.Width, msg.Height-1)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if !m.showDetail && m.ready {
				if item, ok := m.list.SelectedItem().(historyItem); ok {
					m.viewport.SetContent(renderMarkdown(resultMarkdown(item.rec)))
					m.viewport.GotoTop()
					m.showDetail = true
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.showDetail {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m HistoryModel) View() string {
	if m.showDetail {
		return m.viewport.View() + "\n" + dimStyle.Render("esc 返回列表 · q 退出")
	}
	return m.list.View()
}

// BrowseHistory runs the interactive history browser until the user
// quits.
func BrowseHistory(records []result.TestResult) error {
	p := tea.NewProgram(NewHistoryModel(records), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("history browser: %w", err)
	}
	return nil
}
