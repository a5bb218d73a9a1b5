package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/splithalf/internal/storage"
)

type browseModel struct {
	meta   *storage.RunMetadata
	table  *storage.ComponentTable
	cursor int
	offset int
	height int
	width  int
}

// NewBrowser builds the interactive parameter browser for one stored run.
func NewBrowser(meta *storage.RunMetadata, table *storage.ComponentTable) browseModel {
	return browseModel{meta: meta, table: table, height: 24, width: 80}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clamp()
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "pgup":
		m.cursor -= m.pageSize()
	case "pgdown":
		m.cursor += m.pageSize()
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.table.Lambda) - 1
	}
	m.clamp()
	return m, nil
}

func (m *browseModel) clamp() {
	last := len(m.table.Lambda) - 1
	if m.cursor > last {
		m.cursor = last
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
}

// rows available for the table after title, column header and footer.
func (m browseModel) pageSize() int {
	n := m.height - 7
	if n < 1 {
		n = 1
	}
	return n
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(Header.Render(fmt.Sprintf("run %s", m.meta.ID)))
	b.WriteString("\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("%d parameters, %d subjects", len(m.table.Lambda), m.meta.Subjects)))
	b.WriteString("\n\n")

	b.WriteString(MetricLabel.Render(fmt.Sprintf("  %-7s %12s %12s %12s %12s %8s", "param", "sampling", "session", "between", "total", "lambda")))
	b.WriteString("\n")

	end := m.offset + m.pageSize()
	if end > len(m.table.Lambda) {
		end = len(m.table.Lambda)
	}
	for i := m.offset; i < end; i++ {
		row := fmt.Sprintf("%-7d %12.4g %12.4g %12.4g %12.4g %8.3f",
			i, m.table.Sampling[i], m.table.Session[i],
			m.table.Between[i], m.table.Total[i], m.table.Lambda[i])
		styled := LambdaStyle(m.table.Lambda[i]).Render(row)
		if i == m.cursor {
			b.WriteString(Selected.Render("▸ ") + styled)
		} else {
			b.WriteString("  " + styled)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(KeyHint.Render("j/k move  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n")
	return b.String()
}

// RunBrowse opens the parameter browser in an alternate screen.
func RunBrowse(meta *storage.RunMetadata, table *storage.ComponentTable) error {
	if len(table.Lambda) == 0 {
		return fmt.Errorf("viz: run %s has no component rows", meta.ID)
	}
	_, err := tea.NewProgram(NewBrowser(meta, table), tea.WithAltScreen()).Run()
	return err
}
