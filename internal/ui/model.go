package ui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/cwarden/tripline/internal/config"
	"github.com/cwarden/tripline/internal/feed"
	"github.com/cwarden/tripline/internal/itinerary"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	// Core components
	config *config.Config
	source feed.Source
	zones  itinerary.Zones
	logger *slog.Logger

	// Raw data (replaced wholesale on refresh, never mutated)
	events  []itinerary.SourceEvent
	lodging []itinerary.Lodging

	// Display state and its derivations. buckets is recomputed from
	// scratch whenever events, zone, or paging inputs change.
	view      itinerary.ViewState
	buckets   itinerary.Buckets
	zoneNames []string // sorted, for the toggle cycle

	// Now projection in the display zone
	nowDate string
	nowTime string

	// UI state
	width       int
	height      int
	selected    int // index into visible (non-degenerate) window segments
	noteVisible bool
	helpVisible bool
	fetching    bool // serializes refreshes: ticks while in flight are skipped
	message     string

	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Header   lipgloss.Style
	Axis     lipgloss.Style
	Selected lipgloss.Style
	Lodging  lipgloss.Style
	Now      lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Border   lipgloss.Style
	Blocks   []lipgloss.Style
}

func DefaultStyles() Styles {
	block := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color(bg))
	}
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Axis: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Lodging: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")),
		Now: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		// Cycling block colors, one per segment within a day.
		Blocks: []lipgloss.Style{
			block("110"), block("114"), block("222"), block("141"), block("218"),
		},
	}
}

func NewModel(cfg *config.Config, source feed.Source, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	zones := itinerary.Zones(cfg.Zones)
	names := make([]string, 0, len(zones))
	for name := range zones {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &Model{
		config: cfg,
		source: source,
		zones:  zones,
		logger: logger,
		view: itinerary.ViewState{
			Zone:        cfg.DisplayZone,
			DaysPerPage: cfg.DaysPerPage,
			SnapToToday: true,
		},
		zoneNames: names,
		styles:    DefaultStyles(),
	}
	m.updateNow(time.Now())
	return m
}

// Message types
type refreshTickMsg struct{}
type nowTickMsg struct{}
type messageTimeoutMsg struct{}
type fileChangedMsg struct{}
type dataMsg struct {
	events  []itinerary.SourceEvent
	lodging []itinerary.Lodging
	err     error
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.fetchCmd(),
		m.refreshTickCmd(),
		m.nowTickCmd(),
	}
	m.fetching = true

	if w, ok := m.source.(feed.Watchable); ok {
		if ch := w.Changes(); ch != nil {
			cmds = append(cmds, waitForChange(ch))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case refreshTickMsg:
		cmds := []tea.Cmd{m.refreshTickCmd()}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case nowTickMsg:
		m.updateNow(time.Now())
		return m, m.nowTickCmd()

	case fileChangedMsg:
		cmds := []tea.Cmd{}
		if w, ok := m.source.(feed.Watchable); ok {
			if ch := w.Changes(); ch != nil {
				cmds = append(cmds, waitForChange(ch))
			}
		}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case dataMsg:
		m.fetching = false
		if msg.err != nil {
			// Keep the previous data; the next tick retries.
			m.logger.Warn("refresh failed", "error", msg.err)
			return m, m.showMessage(fmt.Sprintf("refresh failed: %v", msg.err))
		}
		m.applyData(msg.events, msg.lodging)
		return m, nil

	case messageTimeoutMsg:
		m.message = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}
	if m.noteVisible {
		switch msg.String() {
		case "q", "esc", "enter":
			m.noteVisible = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.helpVisible = true

	case "l", "right":
		// Any manual page move turns snapping off until the zone
		// changes again.
		m.view.SnapToToday = false
		m.view.Page = m.buckets.ClampPage(m.view.Page+1, m.view.DaysPerPage)
		m.selected = 0

	case "h", "left":
		m.view.SnapToToday = false
		m.view.Page = m.buckets.ClampPage(m.view.Page-1, m.view.DaysPerPage)
		m.selected = 0

	case "t":
		m.cycleZone()

	case "o":
		m.view.SnapToToday = true
		m.applySnap()

	case "j", "down":
		if n := len(m.visibleSegments()); n > 0 && m.selected < n-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "enter":
		if segs := m.visibleSegments(); len(segs) > 0 {
			m.noteVisible = true
		}

	case "W":
		m.view.DaysPerPage++
		m.rebuild()

	case "S":
		if m.view.DaysPerPage > 1 {
			m.view.DaysPerPage--
			m.rebuild()
		}

	case "r":
		if !m.fetching {
			m.fetching = true
			return m, tea.Batch(m.fetchCmd(), m.showMessage("refreshing..."))
		}
	}

	return m, nil
}

// cycleZone advances to the next display zone and re-enables
// snap-to-today, then rebuilds every derived structure.
func (m *Model) cycleZone() {
	for i, name := range m.zoneNames {
		if name == m.view.Zone {
			m.view.Zone = m.zoneNames[(i+1)%len(m.zoneNames)]
			break
		}
	}
	m.view.SnapToToday = true
	m.updateNow(time.Now())
	m.rebuild()
}

// applyData replaces stored records only when they structurally differ
// from the fetched ones, so an unchanged feed causes no recompute.
func (m *Model) applyData(events []itinerary.SourceEvent, lodging []itinerary.Lodging) {
	if slices.Equal(m.events, events) && slices.Equal(m.lodging, lodging) {
		return
	}
	m.events = events
	m.lodging = lodging
	m.rebuild()
}

// rebuild recomputes buckets and dependent state from scratch.
func (m *Model) rebuild() {
	buckets, err := m.zones.BuildBuckets(m.events, m.view.Zone)
	if err != nil {
		// Raw rows are zone-checked at parse time, so this only
		// triggers on a programming error; keep the old buckets.
		m.logger.Error("bucketing failed", "error", err)
		return
	}
	m.buckets = buckets
	if m.view.SnapToToday {
		m.applySnap()
	}
	m.view.Page = m.buckets.ClampPage(m.view.Page, m.view.DaysPerPage)
	m.selected = 0
}

func (m *Model) applySnap() {
	if page, ok := m.buckets.PageForDate(m.nowDate, m.view.DaysPerPage); ok {
		m.view.Page = page
	}
}

func (m *Model) updateNow(now time.Time) {
	date, hm, err := m.zones.Now(now, m.config.LocalZone, m.view.Zone)
	if err != nil {
		m.logger.Error("now projection failed", "error", err)
		return
	}
	m.nowDate = date
	m.nowTime = hm
}

func (m *Model) fetchCmd() tea.Cmd {
	source := m.source
	rate := m.config.RefreshRate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rate)
		defer cancel()

		events, err := source.Events(ctx)
		if err != nil {
			return dataMsg{err: err}
		}
		lodging, err := source.Lodging(ctx)
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{events: events, lodging: lodging}
	}
}

func (m *Model) refreshTickCmd() tea.Cmd {
	return tea.Tick(m.config.RefreshRate, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m *Model) nowTickCmd() tea.Cmd {
	return tea.Tick(m.config.NowRate, func(time.Time) tea.Msg {
		return nowTickMsg{}
	})
}

func waitForChange(ch <-chan feed.ChangeEvent) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *Model) showMessage(text string) tea.Cmd {
	m.message = text
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return messageTimeoutMsg{}
	})
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.helpVisible {
		return m.viewHelp()
	}
	if m.noteVisible {
		return m.viewNote()
	}

	timeline := m.renderTimeline()
	status := m.renderStatusBar()
	return lipgloss.JoinVertical(lipgloss.Left, timeline, status)
}
