package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wifitrackr/internal/scheduler"
	"github.com/sadopc/wifitrackr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	current store.Settings

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	keyword   *string
	startHour *string
	endHour   *string
	interval  *string
	target    *string
}

func newSettingsModel(s *store.Store) settingsModel {
	kw, sh, eh, iv, tg := "", "", "", "", ""
	return settingsModel{
		store:     s,
		keyword:   &kw,
		startHour: &sh,
		endHour:   &eh,
		interval:  &iv,
		target:    &tg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, _ := s.store.LoadSettings()
		return settingsDataMsg{settings: cfg}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.current = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func validateHour(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("enter a whole hour")
	}
	if n < 0 || n > 23 {
		return fmt.Errorf("hour must be between 0 and 23")
	}
	return nil
}

// validateEndHour rejects an end hour numerically equal to the start hour
// ("06" equals "6"), since that would save a zero-width scan window. The
// start value is read through the pointer at validation time.
func validateEndHour(start *string) func(string) error {
	return func(v string) error {
		if err := validateHour(v); err != nil {
			return err
		}
		end, _ := strconv.Atoi(strings.TrimSpace(v))
		if st, err := strconv.Atoi(strings.TrimSpace(*start)); err == nil && st == end {
			return fmt.Errorf("end hour must differ from start hour")
		}
		return nil
	}
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.keyword = s.current.TargetKeyword
	*s.startHour = strconv.Itoa(s.current.ScanStartHour)
	*s.endHour = strconv.Itoa(s.current.ScanEndHour)
	*s.interval = strconv.Itoa(s.current.ScanIntervalMinutes)
	*s.target = strconv.Itoa(s.current.TargetDailyCount)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target network keyword").
				Description("Case-insensitive substring of the network name").
				Value(s.keyword),
		).Title("Target"),
		huh.NewGroup(
			huh.NewInput().
				Title("Scan window start hour (0-23)").
				Value(s.startHour).
				Validate(validateHour),
			huh.NewInput().
				Title("Scan window end hour (0-23)").
				Value(s.endHour).
				Validate(validateEndHour(s.startHour)),
			huh.NewInput().
				Title("Scan interval (minutes)").
				Description(fmt.Sprintf("Minimum %d minutes", scheduler.MinIntervalMinutes)).
				Value(s.interval).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil {
						return fmt.Errorf("enter a whole number of minutes")
					}
					if n < scheduler.MinIntervalMinutes {
						return fmt.Errorf("interval must be at least %d minutes", scheduler.MinIntervalMinutes)
					}
					return nil
				}),
			huh.NewInput().
				Title("Target scans per day").
				Description("Periodic sessions needed for a successful day").
				Value(s.target).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil {
						return fmt.Errorf("enter a whole number")
					}
					if n < 1 {
						return fmt.Errorf("target must be at least 1")
					}
					return nil
				}),
		).Title("Scanning"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Save settings: %v", err), isError: true}
			}
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return statusMsg{text: "Settings saved"}
		})
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	cfg := store.Settings{
		TargetKeyword:       strings.TrimSpace(*s.keyword),
		ScanStartHour:       atoiOr(*s.startHour, store.DefaultScanStartHour),
		ScanEndHour:         atoiOr(*s.endHour, store.DefaultScanEndHour),
		ScanIntervalMinutes: atoiOr(*s.interval, store.DefaultScanIntervalMinutes),
		TargetDailyCount:    atoiOr(*s.target, store.DefaultTargetDailyCount),
	}
	return s.store.SaveSettings(cfg)
}

func atoiOr(v string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return fallback
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	keyword := s.current.TargetKeyword
	if keyword == "" {
		keyword = "(not set)"
	}

	rows := []string{
		title,
		"",
		settingRow("Target keyword", keyword),
		settingRow("Scan window", fmt.Sprintf("%02d:00 – %02d:00", s.current.ScanStartHour, s.current.ScanEndHour)),
		settingRow("Scan interval", fmt.Sprintf("%d min", s.current.ScanIntervalMinutes)),
		settingRow("Daily target", fmt.Sprintf("%d periodic scans", s.current.TargetDailyCount)),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(24).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
