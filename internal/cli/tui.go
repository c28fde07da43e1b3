package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/pipeline"
	"github.com/birchtree/birch/pkg/render/text"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore trees interactively",
		Long: `Explore trees interactively.

Keys:
  ↑/↓ j/k      move
  →/l ←/h      expand, collapse (or jump to parent)
  enter/space  toggle
  a            expand everything below the cursor
  f            toggle the feature panel
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], root)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "id path of the subtree to browse")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input, root string) error {
	loadOpts, err := c.loadOptions(input, root)
	if err != nil {
		return err
	}
	res, err := c.newRunner().Load(ctx, loadOpts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewBrowseModel(input, res.Roots), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// =============================================================================
// BrowseModel - Interactive tree explorer
// =============================================================================

// browseRow is one visible line of the explorer.
type browseRow struct {
	node  pipeline.Node
	depth int
}

// BrowseModel is the bubbletea model for the tree explorer.
type BrowseModel struct {
	Title        string
	Roots        []pipeline.Node
	Expanded     map[pipeline.Node]bool
	Cursor       int
	Offset       int
	Height       int
	ShowFeatures bool

	rows []browseRow
}

// NewBrowseModel creates an explorer with the roots expanded.
func NewBrowseModel(title string, roots []pipeline.Node) BrowseModel {
	m := BrowseModel{
		Title:        title,
		Roots:        roots,
		Expanded:     make(map[pipeline.Node]bool),
		Height:       15,
		ShowFeatures: true,
	}
	for _, r := range roots {
		m.Expanded[r] = true
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows from the expansion state.
func (m *BrowseModel) rebuild() {
	m.rows = make([]browseRow, 0, len(m.rows))
	var visit func(n pipeline.Node, depth int)
	visit = func(n pipeline.Node, depth int) {
		m.rows = append(m.rows, browseRow{node: n, depth: depth})
		if !m.Expanded[n] {
			return
		}
		for c := range n.Each() {
			visit(c, depth+1)
		}
	}
	for _, r := range m.Roots {
		visit(r, 0)
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

// scroll keeps the cursor inside the window.
func (m *BrowseModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the node under the cursor.
func (m BrowseModel) Selected() (pipeline.Node, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return pipeline.Node{}, false
	}
	return m.rows[m.Cursor].node, true
}

// Rows returns the number of visible rows.
func (m BrowseModel) Rows() int { return len(m.rows) }

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n, ok := m.Selected()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "right", "l":
			if ok && n.HasChildren() {
				m.Expanded[n] = true
			}
		case "left", "h":
			if !ok {
				break
			}
			if m.Expanded[n] && n.HasChildren() {
				delete(m.Expanded, n)
				break
			}
			if p, hasParent := n.Parent(); hasParent {
				for i, r := range m.rows {
					if r.node == p {
						m.Cursor = i
						break
					}
				}
			}
		case "enter", " ":
			if ok && n.HasChildren() {
				if m.Expanded[n] {
					delete(m.Expanded, n)
				} else {
					m.Expanded[n] = true
				}
			}
		case "a":
			if ok {
				m.expandAll(n)
			}
		case "f":
			m.ShowFeatures = !m.ShowFeatures
		}
		m.rebuild()
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m BrowseModel) expandAll(n pipeline.Node) {
	if !n.HasChildren() {
		return
	}
	m.Expanded[n] = true
	for c := range n.Each() {
		m.expandAll(c)
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ collapse/expand  a expand all  f features  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "  "
		if r.node.HasChildren() {
			marker = "+ "
			if m.Expanded[r.node] {
				marker = "- "
			}
		}

		line := cursor + strings.Repeat("  ", r.depth) + marker + text.Label(r.node, text.Options{})
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.node.IsLeaf():
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if n, ok := m.Selected(); ok && m.ShowFeatures {
		b.WriteString("\n")
		b.WriteString(m.detailTable(n))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

// detailTable lists the path, value, features and edges of n.
func (m BrowseModel) detailTable(n pipeline.Node) string {
	rows := [][]string{{"path", treeio.FormatPath(treeio.PathOf(n))}}
	if v := n.Value(); v != nil {
		rows = append(rows, []string{"value", fmt.Sprint(v)})
	}
	feats := n.Features()
	for _, name := range n.FeatureNames() {
		rows = append(rows, []string{name, fmt.Sprint(feats[name])})
	}
	for _, e := range n.Edges() {
		rows = append(rows, []string{"edge", text.FormatEdge(e)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return styleHeader
			case col == 0:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
