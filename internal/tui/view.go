package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/parawalk/parawalk/internal/index"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.currentPath == "" {
		return "Loading..."
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	// Header
	writeLine(titleStyle.Render("parawalk - directory browser"))

	// Breadcrumbs / path
	pathLabel := fmt.Sprintf("Path: %s", truncateMiddle(m.currentPath, max(10, m.width-6)))
	writeLine(breadcrumbStyle.Render(pathLabel))

	// Status line
	status := fmt.Sprintf("Items: %s", FormatCount(int64(len(m.entries))))
	if m.filter != "" {
		status += fmt.Sprintf(" | Filter: %q", m.filter)
	}
	if len(m.entries) > 0 && m.cursor < len(m.entries) {
		sel := m.entries[m.cursor]
		status += fmt.Sprintf(" | Sel: %s (%s)", sel.Name, FormatSize(sel.Size))
	}
	writeLine(statusStyle.Render(status))

	// Filter input
	if m.filterActive {
		filterLine := fmt.Sprintf("Filter: %s_", m.filter)
		writeLine(filterStyle.Render(filterLine))
	} else if m.filter != "" {
		filterLine := fmt.Sprintf("Filter: %s", m.filter)
		writeLine(filterStyle.Render(filterLine))
	}

	// Column headers with sort indicator
	sizeLabel := headerLabel("SIZE", m.sort == SortBySize, "v")
	nameLabel := headerLabel("NAME", m.sort == SortByName, "^")

	footerLines := 2
	visibleRows := m.height - headerLines - footerLines
	if visibleRows < 5 {
		visibleRows = 5
	}

	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.entries), startIdx+visibleRows)

	sizeWidth := calcSizeWidth(m.entries, startIdx, endIdx, sizeLabel)
	nameWidth := calcNameWidth(m.width, sizeWidth)
	gap := strings.Repeat(" ", colGap)
	nameGap := strings.Repeat(" ", nameGapWidth)

	nameLabel = truncateRight(nameLabel, nameWidth)
	namePad := nameWidth - len(nameLabel)
	if namePad < 0 {
		namePad = 0
	}
	header := fmt.Sprintf("%*s%s%s%*s%s%s",
		sizeWidth, sizeLabel,
		nameGap,
		nameLabel, namePad, "",
		gap,
		"SIZE%",
	)
	writeLine(headerStyle.Render(header))

	total := m.listingTotal()
	for i := startIdx; i < endIdx; i++ {
		e := m.entries[i]
		line := m.formatEntry(e, i == m.cursor, sizeWidth, nameWidth, total)
		b.WriteString(line)
		b.WriteString("\n")
	}

	displayedRows := min(len(m.entries)-startIdx, visibleRows)
	for i := displayedRows; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.helpLine()
	if len(m.entries) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.entries))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

const (
	colGap        = 2
	nameGapWidth  = 2
	minNameWidth  = 10
	barBlockWidth = 10
	barPctWidth   = 4
	barGapWidth   = 2
	barColWidth   = barBlockWidth + barGapWidth + barPctWidth
)

func calcSizeWidth(entries []index.DisplayEntry, startIdx, endIdx int, label string) int {
	w := len(label)
	for i := startIdx; i < endIdx; i++ {
		if l := len(FormatSize(entries[i].Size)); l > w {
			w = l
		}
	}
	return w
}

func calcNameWidth(totalWidth, sizeWidth int) int {
	used := sizeWidth + nameGapWidth + colGap + barColWidth
	nameWidth := totalWidth - used
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}
	return nameWidth
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func (m *Model) formatEntry(e index.DisplayEntry, selected bool, sizeWidth, nameWidth int, listingTotal int64) string {
	size := FormatSize(e.Size)

	var rawName string
	switch e.Kind {
	case index.KindDir:
		rawName = e.Name + "/"
	case index.KindOther:
		rawName = e.Name + "@"
	default:
		rawName = e.Name
	}

	rawName = truncateRight(rawName, nameWidth)
	var styledName string
	switch e.Kind {
	case index.KindDir:
		styledName = dirStyle.Render(rawName)
	case index.KindOther:
		styledName = symlinkStyle.Render(rawName)
	default:
		styledName = fileStyle.Render(rawName)
	}

	pad := nameWidth - len(rawName)
	if pad < 0 {
		pad = 0
	}
	paddedName := styledName + strings.Repeat(" ", pad)

	bar := formatBar(e.Size, listingTotal)

	gap := strings.Repeat(" ", colGap)
	nameGap := strings.Repeat(" ", nameGapWidth)
	line := fmt.Sprintf("%*s%s%s%s%s",
		sizeWidth, size,
		nameGap,
		paddedName,
		gap,
		bar,
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func formatBar(entryVal, total int64) string {
	if total <= 0 || entryVal <= 0 {
		empty := strings.Repeat("░", barBlockWidth)
		return barEmptyStyle.Render(empty) + fmt.Sprintf("  %3d%%", 0)
	}

	pct := float64(entryVal) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}

	filled := int(math.Round(pct / 100 * float64(barBlockWidth)))
	if filled < 1 && entryVal > 0 {
		filled = 1
	}
	if filled > barBlockWidth {
		filled = barBlockWidth
	}

	filledStr := barFilledStyle.Render(strings.Repeat("█", filled))
	emptyStr := barEmptyStyle.Render(strings.Repeat("░", barBlockWidth-filled))
	return filledStr + emptyStr + fmt.Sprintf("  %3d%%", int(math.Round(pct)))
}

func headerLabel(label string, active bool, dir string) string {
	if active {
		return label + dir
	}
	return label
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
