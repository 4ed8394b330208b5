package tui

import (
	"database/sql"
	"strings"

	"github.com/parawalk/parawalk/internal/index"

	tea "github.com/charmbracelet/bubbletea"
)

// SortColumn represents the current sort field. Only two columns
// survive from dug's four: size and name. dug's "disk"/"files" columns
// were rollup aggregates over a directory's whole subtree; parawalk's
// index holds only the entries a single walk produced, with no
// subtree total to sort by.
type SortColumn int

const (
	SortBySize SortColumn = iota
	SortByName
)

func (s SortColumn) String() string {
	if s == SortByName {
		return "name"
	}
	return "size"
}

// Model holds the TUI state.
type Model struct {
	db           *sql.DB
	rootPath     string
	currentPath  string
	allEntries   []index.DisplayEntry
	entries      []index.DisplayEntry
	cursor       int
	sort         SortColumn
	width        int
	height       int
	filter       string
	filterActive bool
	err          error
}

// NewModel creates a new TUI model over an already-ingested index.
func NewModel(database *sql.DB, rootPath string) *Model {
	return &Model{
		db:       database,
		rootPath: rootPath,
		sort:     SortBySize,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadInitialData
}

type dataLoadedMsg struct {
	entries []index.DisplayEntry
	err     error
}

func (m *Model) loadInitialData() tea.Msg {
	entries, err := index.LoadChildren(m.db, m.rootPath, m.sort.String(), 1000)
	if err != nil {
		return dataLoadedMsg{err: err}
	}
	return dataLoadedMsg{entries: entries}
}

type entriesLoadedMsg struct {
	entries []index.DisplayEntry
	err     error
}

func (m *Model) loadEntries(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := index.LoadChildren(m.db, path, m.sort.String(), 1000)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	return "↑/↓ move | Enter: open | Backspace: close | s/n: sort | /: filter | q: quit"
}

func (m *Model) setEntries(entries []index.DisplayEntry) {
	m.allEntries = entries
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.entries = m.allEntries
	} else {
		filtered := make([]index.DisplayEntry, 0, len(m.allEntries))
		needle := strings.ToLower(m.filter)
		for _, e := range m.allEntries {
			if strings.Contains(strings.ToLower(e.Name), needle) {
				filtered = append(filtered, e)
			}
		}
		m.entries = filtered
	}
	m.cursor = 0
}

// listingTotal sums the sizes currently loaded, used as the bar's
// denominator in place of dug's subtree rollup total.
func (m *Model) listingTotal() int64 {
	var total int64
	for _, e := range m.allEntries {
		total += e.Size
	}
	return total
}
