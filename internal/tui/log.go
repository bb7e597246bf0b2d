package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wifitrackr/internal/logging"
	"github.com/sadopc/wifitrackr/internal/stats"
	"github.com/sadopc/wifitrackr/internal/store"
)

type logTab int

const (
	tabSessions logTab = iota
	tabDebug
)

type logModel struct {
	store  *store.Store
	ring   *logging.Ring
	width  int
	height int

	tab      logTab
	sessions []stats.Session
	cursor   int

	selected      *stats.Session
	selectedNames []string
	confirmClear  bool
}

func newLogModel(s *store.Store, ring *logging.Ring) logModel {
	return logModel{store: s, ring: ring}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type logDataMsg struct {
	sessions []stats.Session
}

type sessionDetailMsg struct {
	session stats.Session
	names   []string
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := l.store.AllRecords()
		return logDataMsg{sessions: stats.Sessions(records)}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logDataMsg:
		l.sessions = msg.sessions
		if l.cursor >= len(l.sessions) {
			l.cursor = max(0, len(l.sessions)-1)
		}
		return l, nil

	case sessionDetailMsg:
		s := msg.session
		l.selected = &s
		l.selectedNames = msg.names
		return l, nil

	case tea.KeyMsg:
		if l.confirmClear {
			return l.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, keys.Mode):
			if l.tab == tabSessions {
				l.tab = tabDebug
			} else {
				l.tab = tabSessions
			}
			return l, nil
		case key.Matches(msg, keys.Back):
			l.selected = nil
			l.selectedNames = nil
			return l, nil
		case key.Matches(msg, keys.ClearAll):
			l.confirmClear = true
			return l, nil
		}
		if l.tab != tabSessions {
			return l, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.sessions)-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if l.cursor < len(l.sessions) {
				return l, l.loadDetail(l.sessions[l.cursor])
			}
		}
	}
	return l, nil
}

func (l logModel) updateConfirm(msg tea.KeyMsg) (logModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		l.confirmClear = false
		l.selected = nil
		l.selectedNames = nil
		return l, l.doClear()
	case key.Matches(msg, keys.Back):
		l.confirmClear = false
	}
	return l, nil
}

// loadDetail re-queries the session's rows so the detail view shows the
// store's name-sorted ordering rather than trusting the grouped snapshot.
func (l logModel) loadDetail(s stats.Session) tea.Cmd {
	return func() tea.Msg {
		records, err := l.store.RecordsForSession(s.SessionID)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load session: %v", err), isError: true}
		}
		names := make([]string, 0, len(records))
		for _, r := range records {
			names = append(names, r.NetworkName)
		}
		return sessionDetailMsg{session: s, names: names}
	}
}

func (l logModel) doClear() tea.Cmd {
	return func() tea.Msg {
		if err := l.store.DeleteAllRecords(); err != nil {
			return statusMsg{text: fmt.Sprintf("Clear records: %v", err), isError: true}
		}
		return recordsClearedMsg{}
	}
}

func (l logModel) view() string {
	w := l.width - 4

	sessionsTab := inactiveTabStyle.Render("Sessions")
	debugTab := inactiveTabStyle.Render("Debug Log")
	if l.tab == tabSessions {
		sessionsTab = activeTabStyle.Render("Sessions")
	} else {
		debugTab = activeTabStyle.Render("Debug Log")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Log"), "  ", sessionsTab, debugTab,
	)

	var body string
	switch {
	case l.confirmClear:
		body = errorStyle.Render("Delete ALL scan records? This cannot be undone.") + "\n" +
			mutedStyle.Render("  enter: delete  esc: cancel")
	case l.tab == tabDebug:
		body = l.renderDebug()
	case l.selected != nil:
		body = l.renderDetail()
	default:
		body = l.renderSessions(w)
	}

	nav := mutedStyle.Render("  m: switch tab  enter: details  d: clear all")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (l logModel) renderSessions(w int) string {
	if len(l.sessions) == 0 {
		return mutedStyle.Render("  No scan sessions recorded yet")
	}

	visible := l.sessions
	maxRows := max(3, l.height-10)
	start := 0
	if l.cursor >= maxRows {
		start = l.cursor - maxRows + 1
	}
	if start+maxRows < len(visible) {
		visible = visible[start : start+maxRows]
	} else {
		visible = visible[start:]
	}

	var rows []string
	for i, s := range visible {
		idx := start + i
		cursor := "  "
		style := normalItemStyle
		if idx == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%s %s  %d network(s)  %s",
			cursor, scanTypeGlyph(s.ScanType), formatStamp(s.Timestamp), s.NetworkCount, s.MatchedKeyword)
		rows = append(rows, style.Render(row))
	}
	return strings.Join(rows, "\n")
}

func (l logModel) renderDetail() string {
	s := l.selected
	var rows []string
	rows = append(rows, highlightStyle.Render(formatStamp(s.Timestamp))+
		mutedStyle.Render(fmt.Sprintf("  %s scan, keyword %q", s.ScanType, s.MatchedKeyword)))
	rows = append(rows, "")
	for _, name := range l.selectedNames {
		rows = append(rows, "  "+name)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: back"))
	return strings.Join(rows, "\n")
}

func (l logModel) renderDebug() string {
	lines := l.ring.Lines()
	if len(lines) == 0 {
		return mutedStyle.Render("  No debug output yet")
	}
	maxRows := max(3, l.height-10)
	if len(lines) > maxRows {
		lines = lines[len(lines)-maxRows:]
	}
	var rows []string
	for _, line := range lines {
		rows = append(rows, mutedStyle.Render("  "+line))
	}
	return strings.Join(rows, "\n")
}
