package display

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aroussi/fragsim/internal/export"
	"github.com/aroussi/fragsim/pkg/fragment"
)

// Theme bundles the lipgloss styles for one color scheme.
type Theme struct {
	Name   string
	Title  lipgloss.Style
	Header lipgloss.Style
	Row    lipgloss.Style
	Badge  lipgloss.Style
	More   lipgloss.Style
	Last   lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}

// LightTheme returns styles for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Name:   "light",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240")),
		Row:    lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		More:   lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
		Last:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Status: lipgloss.NewStyle().Background(lipgloss.Color("254")).Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

// DarkTheme returns styles for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Name:   "dark",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		Row:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
		More:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Last:   lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		Status: lipgloss.NewStyle().Background(lipgloss.Color("235")).Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

// ThemeByName resolves a configured theme name, defaulting to light.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}

// TUIModel is the Bubbletea model for the interactive report viewer.
type TUIModel struct {
	report        *fragment.Report
	theme         Theme
	viewport      viewport.Model
	ready         bool
	width         int
	height        int
	showHelp      bool
	status        string
	exportDir     string
	autoTimestamp bool
}

// NewTUIModel creates a new report viewer model.
func NewTUIModel(rep *fragment.Report, theme Theme, exportDir string, autoTimestamp bool) *TUIModel {
	return &TUIModel{
		report:        rep,
		theme:         theme,
		exportDir:     exportDir,
		autoTimestamp: autoTimestamp,
	}
}

// ThemeName returns the name of the currently active theme, so the
// caller can persist a toggle made during the session.
func (m *TUIModel) ThemeName() string {
	return m.theme.Name
}

// Init implements tea.Model
func (m *TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.toggleTheme()
			return m, nil
		case "e":
			m.status = m.exportReport()
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - m.chromeHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.viewport.SetContent(m.renderReport())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m *TUIModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	title := fmt.Sprintf("fragsim — %d-byte packet, ID %d, %d hops",
		m.report.PacketSize, m.report.FragmentID, m.report.TotalHops())
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderStatusBar())
	}

	return b.String()
}

// chromeHeight is the number of lines used outside the viewport.
func (m *TUIModel) chromeHeight() int {
	if m.showHelp {
		return 8
	}
	return 4
}

func (m *TUIModel) toggleTheme() {
	if m.theme.Name == "dark" {
		m.theme = LightTheme()
	} else {
		m.theme = DarkTheme()
	}
	if m.ready {
		offset := m.viewport.YOffset
		m.viewport.SetContent(m.renderReport())
		m.viewport.SetYOffset(offset)
	}
	m.status = fmt.Sprintf("theme: %s", m.theme.Name)
}

// exportReport writes the report as CSV into the export directory and
// returns a status line describing the outcome.
func (m *TUIModel) exportReport() string {
	name := "fragmentation_report.csv"
	if m.autoTimestamp {
		name = fmt.Sprintf("fragmentation_%s.csv", time.Now().Format("20060102_150405"))
	}
	path := filepath.Join(m.exportDir, name)
	if err := export.ExportToFile(path, export.FormatCSV, m.report); err != nil {
		return fmt.Sprintf("export failed: %v", err)
	}
	return fmt.Sprintf("exported %s", path)
}

// renderReport builds the full scrollable report body.
func (m *TUIModel) renderReport() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n",
		m.theme.Header.Render("MTU path:"),
		m.theme.Row.Render(formatPath(m.report.MTUPath)))

	for _, hop := range m.report.Hops {
		b.WriteString(m.renderHop(hop))
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d final fragments | %d bytes header overhead",
		m.report.FinalFragmentCount(), m.report.TotalHeaderOverhead())
	b.WriteString(m.theme.Badge.Render(summary))
	b.WriteString("\n")

	return b.String()
}

// renderHop renders one hop's fragment table with themed styles.
func (m *TUIModel) renderHop(hop fragment.HopResult) string {
	var b strings.Builder

	badge := fmt.Sprintf("Hop %d  MTU %d", hop.HopNumber, hop.MTU)
	b.WriteString(m.theme.Badge.Render(badge))
	b.WriteString("\n")

	header := fmt.Sprintf("%-5s %-8s %-8s %-8s %-11s %-11s %s",
		"Seq", "ID", "Total", "Data", "Offset(B)", "Offset(8B)", "MF")
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n")

	for i, f := range hop.Fragments {
		row := fmt.Sprintf("%-5d %-8d %-8d %-8d %-11d %-11d ",
			f.Sequence, f.ID, f.TotalSize(m.report.HeaderSize), f.DataLength,
			f.OffsetBytes(), f.OffsetUnits)
		b.WriteString(m.theme.Row.Render(row))
		if hop.MoreFragments(i) {
			b.WriteString(m.theme.More.Render("1 (More)"))
		} else {
			b.WriteString(m.theme.Last.Render("0 (Last)"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderStatusBar renders the one-line footer.
func (m *TUIModel) renderStatusBar() string {
	parts := []string{"q quit", "t theme", "e export csv", "? help"}
	bar := strings.Join(parts, " │ ")
	if m.status != "" {
		bar = m.status + " │ " + bar
	}
	return m.theme.Status.Render(bar)
}

// renderHelp renders the expanded help footer.
func (m *TUIModel) renderHelp() string {
	lines := []string{
		"↑/↓, pgup/pgdn  scroll the report",
		"t               toggle light/dark theme",
		"e               export the report as CSV",
		"?               close this help",
		"q               quit",
	}
	return m.theme.Help.Render(strings.Join(lines, "\n"))
}

// RunTUI runs the interactive report viewer and returns the theme that
// was active when it exited.
func RunTUI(rep *fragment.Report, themeName, exportDir string, autoTimestamp bool) (string, error) {
	model := NewTUIModel(rep, ThemeByName(themeName), exportDir, autoTimestamp)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return themeName, err
	}

	return model.ThemeName(), nil
}
