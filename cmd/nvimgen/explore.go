package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvimbind/nvimgen/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	deprecatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type exploreState int

const (
	stateList exploreState = iota
	stateDetail
)

type exploreModel struct {
	err      error
	input    string
	nvim     string
	m        *manifest.Manifest
	names    []string
	byName   map[string]manifest.Function
	filtered []string
	filter   textinput.Model
	selected int
	offset   int
	height   int
	state    exploreState
}

type manifestMsg struct {
	err error
	m   *manifest.Manifest
}

func newExploreModel(input, nvim string) *exploreModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &exploreModel{
		input:  input,
		nvim:   nvim,
		filter: ti,
		height: 20,
		state:  stateList,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return tea.Batch(m.load, textinput.Blink)
}

func (m *exploreModel) load() tea.Msg {
	manifestDoc, err := loadManifest(context.Background(), m.input, m.nvim)
	if err != nil {
		return manifestMsg{err: err}
	}
	return manifestMsg{m: manifestDoc}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 3 {
			m.height = 3
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				return m, nil
			}
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
				m.clampOffset()
			}

		case "down":
			if m.state == stateList && m.selected < len(m.filtered)-1 {
				m.selected++
				m.clampOffset()
			}

		case "enter":
			if m.state == stateList && len(m.filtered) > 0 {
				m.state = stateDetail
			} else if m.state == stateDetail {
				m.state = stateList
			}
			return m, nil
		}

	case manifestMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.m = msg.m
		m.byName = make(map[string]manifest.Function, len(msg.m.Functions))
		m.names = make([]string, 0, len(msg.m.Functions))
		for _, fn := range msg.m.Functions {
			m.names = append(m.names, fn.Name)
			m.byName[fn.Name] = fn
		}
		sort.Strings(m.names)
		m.applyFilter()
	}

	if m.state == stateList {
		var cmd tea.Cmd
		prev := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != prev {
			m.applyFilter()
		}
		return m, cmd
	}

	return m, nil
}

func (m *exploreModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for _, name := range m.names {
		if needle == "" || strings.Contains(strings.ToLower(name), needle) {
			m.filtered = append(m.filtered, name)
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.offset = 0
	m.clampOffset()
}

func (m *exploreModel) clampOffset() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

func (m *exploreModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
	}
	if m.m == nil {
		return "Loading manifest..."
	}

	var b strings.Builder
	v := m.m.Version
	b.WriteString(titleStyle.Render("nvimgen explore"))
	fmt.Fprintf(&b, " API %d.%d.%d level %d\n\n", v.Major, v.Minor, v.Patch, v.APILevel)

	if m.state == stateDetail {
		m.viewDetail(&b)
		return b.String()
	}

	b.WriteString(m.filter.View())
	fmt.Fprintf(&b, "   %d/%d functions\n\n", len(m.filtered), len(m.names))

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.offset; i < end; i++ {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + m.formatFunc(m.byName[m.filtered[i]])))
		} else {
			b.WriteString("  " + m.formatFuncStyled(m.byName[m.filtered[i]]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter details • esc clear/quit"))
	return b.String()
}

func (m *exploreModel) viewDetail(b *strings.Builder) {
	fn := m.byName[m.filtered[m.selected]]

	b.WriteString(funcStyle.Render(fn.Name))
	b.WriteString("\n\n")
	if len(fn.Parameters) == 0 {
		b.WriteString("  (no parameters)\n")
	}
	for _, p := range fn.Parameters {
		fmt.Fprintf(b, "  %-20s %s\n", p.Name, typeStyle.Render(fmt.Sprint(p.Type)))
	}
	fmt.Fprintf(b, "\n  returns %s\n", typeStyle.Render(fmt.Sprint(fn.ReturnType)))
	fmt.Fprintf(b, "  since API level %d", fn.Since)
	if fn.DeprecatedSince != nil {
		b.WriteString("  ")
		b.WriteString(deprecatedStyle.Render(fmt.Sprintf("deprecated since %d", *fn.DeprecatedSince)))
	}
	if fn.Method {
		b.WriteString("\n  method on its first argument")
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter/esc back • ctrl+c quit"))
}

func (m *exploreModel) formatFunc(fn manifest.Function) string {
	var params []string
	for _, p := range fn.Parameters {
		params = append(params, p.Name)
	}
	s := fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.DeprecatedSince != nil {
		s += "  [deprecated]"
	}
	return s
}

func (m *exploreModel) formatFuncStyled(fn manifest.Function) string {
	var params []string
	for _, p := range fn.Parameters {
		params = append(params, p.Name)
	}
	s := funcStyle.Render(fn.Name) + "(" + strings.Join(params, ", ") + ")"
	if fn.DeprecatedSince != nil {
		s += "  " + deprecatedStyle.Render("[deprecated]")
	}
	return s
}

func runExplore(input, nvim string) error {
	p := tea.NewProgram(newExploreModel(input, nvim), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
