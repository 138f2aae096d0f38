package ui

import (
	"fmt"
	"strings"

	"github.com/cwarden/tripline/internal/itinerary"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("Tripline Help"),
		"",
		m.styles.Normal.Render("Navigation:"),
		m.styles.Help.Render("  h/←     - Previous page of days"),
		m.styles.Help.Render("  l/→     - Next page of days"),
		m.styles.Help.Render("  j/↓     - Next segment"),
		m.styles.Help.Render("  k/↑     - Previous segment"),
		m.styles.Help.Render("  o       - Snap to today"),
		"",
		m.styles.Normal.Render("Display:"),
		m.styles.Help.Render("  t       - Toggle display timezone"),
		m.styles.Help.Render("  W/S     - More/fewer days per page"),
		m.styles.Help.Render("  enter   - Show note for selected segment"),
		m.styles.Help.Render("  r       - Refresh now"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

// viewNote shows the selected segment's note, wrapped to the box width.
func (m *Model) viewNote() string {
	sel, ok := m.selectedSegment()
	if !ok {
		return m.styles.Help.Render("(nothing selected)")
	}

	boxWidth := m.width * 2 / 3
	if boxWidth < 40 {
		boxWidth = 40
	}

	var lines []string
	lines = append(lines, m.styles.Header.Render(
		fmt.Sprintf("%s  %s-%s", itinerary.FormatDisplayDate(sel.date), sel.seg.Start, sel.seg.End)))
	lines = append(lines, m.styles.Normal.Render(sel.seg.Title))
	lines = append(lines, "")

	if sel.seg.Note == "" {
		lines = append(lines, m.styles.Help.Render("(no note)"))
	} else {
		maxWidth := boxWidth - 4
		if maxWidth < 20 {
			maxWidth = 20
		}
		wrapped := wordwrap.String(sel.seg.Note, maxWidth)
		for _, line := range strings.Split(wrapped, "\n") {
			if line != "" {
				lines = append(lines, m.styles.Normal.Render(line))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Help.Render("enter/esc to close"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.styles.Border.Width(boxWidth).Render(content)
}

func (m *Model) renderStatusBar() string {
	total := m.buckets.TotalPages(m.view.DaysPerPage)
	page := m.buckets.ClampPage(m.view.Page, m.view.DaysPerPage)

	left := fmt.Sprintf(" Page %d/%d | %s | now %s %s",
		page+1, total, m.view.Zone, m.nowDate, m.nowTime)

	right := "h/l:page  t:timezone  o:today  enter:note  ?:help  q:quit"
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
