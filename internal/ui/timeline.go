package ui

import (
	"fmt"
	"strings"

	"github.com/cwarden/tripline/internal/itinerary"

	"github.com/charmbracelet/lipgloss"
)

const axisWidth = 6

// windowSegment is one selectable, renderable segment in the current
// page window. index is the segment's position within its day bucket
// and drives the cycling block color.
type windowSegment struct {
	date  string
	index int
	seg   itinerary.DaySegment
}

// visibleSegments flattens the window's segments in day order, skipping
// degenerate ones (end <= start after clipping) — those exist in the
// buckets but are never drawn or selectable.
func (m *Model) visibleSegments() []windowSegment {
	window := m.buckets.Window(m.view.Page, m.view.DaysPerPage)

	var out []windowSegment
	for _, date := range window {
		for i, seg := range m.buckets.ByDate[date] {
			if itinerary.ToMinutes(seg.End) <= itinerary.ToMinutes(seg.Start) {
				continue
			}
			out = append(out, windowSegment{date: date, index: i, seg: seg})
		}
	}
	return out
}

func (m *Model) selectedSegment() (windowSegment, bool) {
	segs := m.visibleSegments()
	if len(segs) == 0 {
		return windowSegment{}, false
	}
	if m.selected >= len(segs) {
		return segs[len(segs)-1], true
	}
	return segs[m.selected], true
}

// renderTimeline draws the hour axis plus one column per windowed day:
// date header, lodging label, then segment blocks positioned by
// minute-of-day within the visible hour range.
func (m *Model) renderTimeline() string {
	window := m.buckets.Window(m.view.Page, m.view.DaysPerPage)
	if len(window) == 0 {
		return m.styles.Help.Render("No itinerary loaded yet.")
	}

	startHour, endHour := m.buckets.VisibleHours(window)
	startMin := startHour * 60
	endMin := endHour * 60

	// Two rows per hour unless the terminal is too short.
	rowsPerHour := 2
	available := m.height - 4 // date header, lodging line, status bar, spare
	if (endHour-startHour)*rowsPerHour > available && available > 0 {
		rowsPerHour = 1
	}
	totalRows := (endHour - startHour) * rowsPerHour
	if totalRows < 1 {
		totalRows = 1
	}

	colWidth := (m.width - axisWidth - len(window)) / len(window)
	if colWidth < 16 {
		colWidth = 16
	}

	axis := m.renderAxis(startMin, totalRows, rowsPerHour)
	columns := []string{axis}
	for _, date := range window {
		columns = append(columns, " ", m.renderDayColumn(date, colWidth, startMin, endMin, totalRows, rowsPerHour))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) renderAxis(startMin, totalRows, rowsPerHour int) string {
	lines := []string{
		strings.Repeat(" ", axisWidth), // date header row
		strings.Repeat(" ", axisWidth), // lodging row
	}
	for r := 0; r < totalRows; r++ {
		minute := startMin + r*60/rowsPerHour
		label := strings.Repeat(" ", axisWidth)
		if minute%60 == 0 {
			label = fmt.Sprintf("%5s ", fmt.Sprintf("%d:00", minute/60))
		}
		lines = append(lines, m.styles.Axis.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderDayColumn(date string, colWidth, startMin, endMin, totalRows, rowsPerHour int) string {
	texts := make([]string, totalRows)
	styles := make([]lipgloss.Style, totalRows)
	for r := range texts {
		texts[r] = strings.Repeat(" ", colWidth)
		styles[r] = m.styles.Normal
	}

	selected, hasSelection := m.selectedSegment()

	for i, seg := range m.buckets.ByDate[date] {
		sMin := clampMin(itinerary.ToMinutes(seg.Start), startMin, endMin)
		eMin := clampMin(itinerary.ToMinutes(seg.End), startMin, endMin)
		if eMin <= sMin {
			continue // degenerate after clipping: skip, never error
		}

		sRow := (sMin - startMin) * rowsPerHour / 60
		eRow := ((eMin-startMin)*rowsPerHour + 59) / 60
		if eRow <= sRow {
			eRow = sRow + 1
		}
		if eRow > totalRows {
			eRow = totalRows
		}

		style := m.styles.Blocks[i%len(m.styles.Blocks)]
		if hasSelection && selected.date == date && selected.index == i {
			style = m.styles.Selected
		}

		label := fmt.Sprintf("%s-%s %s", seg.Start, seg.End, seg.Title)
		for r := sRow; r < eRow; r++ {
			text := ""
			if r == sRow {
				text = label
			}
			texts[r] = pad(text, colWidth)
			styles[r] = style
		}
	}

	// Now indicator: drawn only when the projected now falls on this
	// date and inside the visible hour range.
	if date == m.nowDate {
		nowMin := itinerary.ToMinutes(m.nowTime)
		if nowMin >= startMin && nowMin < endMin {
			r := (nowMin - startMin) * rowsPerHour / 60
			if strings.TrimSpace(texts[r]) == "" {
				texts[r] = pad("── now "+m.nowTime+" "+strings.Repeat("─", colWidth), colWidth)
			}
			styles[r] = m.styles.Now
		}
	}

	lines := []string{
		m.styles.Header.Render(pad(itinerary.FormatDisplayDate(date), colWidth)),
		m.styles.Lodging.Render(pad(m.lodgingFor(date), colWidth)),
	}
	for r := range texts {
		lines = append(lines, styles[r].Render(texts[r]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// lodgingFor joins lodging labels against the date by exact string
// equality; display only.
func (m *Model) lodgingFor(date string) string {
	for _, l := range m.lodging {
		if l.Date == date {
			return "⌂ " + l.Name
		}
	}
	return ""
}

func clampMin(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pad truncates or right-pads to exactly width.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 3 {
			return string(r[:width])
		}
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(r))
}
