package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/pipeline"
)

// previewCommand creates the preview command for the interactive terminal view.
func (c *CLI) previewCommand() *cobra.Command {
	var configFile string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [gallery.json]",
		Short: "Preview a gallery layout interactively in the terminal",
		Long: `Preview a gallery layout interactively in the terminal.

Each photo is drawn as a colored block whose width matches its share of
the row. The layout is recomputed from scratch on every terminal resize,
so the rows reflow exactly as they would in a browser window.

Keys: q quit, r reshuffle tie-breaking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			cfg.applyTo(&opts)

			g, err := gallery.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load gallery %s: %w", args[0], err)
			}
			if len(g.Photos) == 0 {
				printInfo("Gallery is empty, nothing to preview")
				return nil
			}

			model := newPreviewModel(g, opts)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			if m, ok := final.(previewModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "TOML config file (default: XDG config dir)")
	cmd.Flags().Float64Var(&opts.BandMin, "band-min", 0, "minimum row aspect ratio (default 1.8)")
	cmd.Flags().Float64Var(&opts.BandMax, "band-max", 0, "maximum row aspect ratio (default 3.6)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for tie-breaking (default 42)")

	return cmd
}

// Block colors cycled across photos so adjacent items stay distinguishable.
var previewPalette = []lipgloss.Color{
	lipgloss.Color("24"), lipgloss.Color("29"), lipgloss.Color("60"),
	lipgloss.Color("94"), lipgloss.Color("96"), lipgloss.Color("131"),
	lipgloss.Color("66"),
}

// previewRowHeight is the display height of one row in terminal lines.
// Real pixel heights would dwarf a terminal, so rows are schematic.
const previewRowHeight = 3

// =============================================================================
// previewModel - Interactive layout preview
// =============================================================================

// previewModel is the bubbletea model for the layout preview. It keeps the
// source gallery and recomputes the layout whenever the terminal width
// changes, the same contract a browser client follows on window resize.
type previewModel struct {
	gallery gallery.Gallery
	opts    pipeline.Options
	width   int
	layout  gallery.Layout
	err     error
}

func newPreviewModel(g gallery.Gallery, opts pipeline.Options) previewModel {
	return previewModel{gallery: g, opts: opts}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.opts.Randomize = true
			m.opts.Seed = m.opts.Seed*31 + 17
			m = m.recompute()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 2
		if m.width < 20 {
			m.width = 20
		}
		m = m.recompute()
	}
	return m, nil
}

// recompute reruns the full partition at the current terminal width.
func (m previewModel) recompute() previewModel {
	if m.width == 0 {
		return m
	}
	opts := m.opts
	opts.Width = m.width
	opts.NoBorder = true

	l, err := pipeline.GenerateLayout(m.gallery, opts)
	if err != nil {
		m.err = err
		return m
	}
	m.layout = l
	m.err = nil
	return m
}

func (m previewModel) View() string {
	if m.err != nil {
		return StyleWarning.Render("layout error: " + m.err.Error())
	}
	if m.width == 0 {
		return StyleDim.Render("measuring terminal...")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d photos · %d rows · %dpx",
		len(m.gallery.Photos), len(m.layout.Rows), m.layout.ContainerWidth)))
	b.WriteString("\n\n")

	color := 0
	for _, row := range m.layout.Rows {
		blocks := make([]string, 0, len(row.Items))
		for _, item := range row.Items {
			if item.Width < 1 {
				continue
			}
			style := lipgloss.NewStyle().
				Width(item.Width).
				Height(previewRowHeight).
				Align(lipgloss.Center, lipgloss.Center).
				Background(previewPalette[color%len(previewPalette)]).
				Foreground(colorWhite)
			label := item.ID
			if len(label) > item.Width-2 {
				label = ""
			}
			blocks = append(blocks, style.Render(label))
			color++
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit · r reshuffle · resize to reflow"))
	return b.String()
}
