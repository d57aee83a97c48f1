// Package printer renders forests, flat lists and projections for the
// command line.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/storage"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

// Format is an output format of the command line
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat maps a user supplied name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "indented":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Printer writes command results to Out
type Printer struct {
	Out    io.Writer
	Format Format

	// NoColor disables ANSI colours in table output
	NoColor bool

	// RenderMarkdown pipes markdown output through glamour; set it when Out
	// is a terminal. WrapWidth is the glamour word wrap.
	RenderMarkdown bool
	WrapWidth      int
}

// New creates a printer for format writing to out
func New(out io.Writer, format Format) *Printer {
	return &Printer{Out: out, Format: format, WrapWidth: 80}
}

func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.NoColor {
		c.DisableColor()
	}
	return c
}

func (p *Printer) header(cells ...string) []interface{} {
	h := p.style(color.Bold, color.Underline)
	row := make([]interface{}, len(cells))
	for i, cell := range cells {
		row[i] = h.Sprint(cell)
	}
	return row
}

// Forest prints a nested forest
func (p *Printer) Forest(items []*model.Item) error {
	switch p.Format {
	case FormatTable:
		return p.outline(items)
	case FormatJSON:
		return storage.WriteJSON(p.Out, items)
	case FormatYAML:
		return storage.WriteYAML(p.Out, items)
	case FormatText:
		return storage.WriteIndented(p.Out, items)
	case FormatMarkdown:
		var sb strings.Builder
		if err := storage.WriteMarkdown(&sb, items); err != nil {
			return err
		}
		return p.markdown(sb.String())
	default:
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
}

// outline draws the forest with expand markers and collapsed counts
func (p *Printer) outline(items []*model.Item) error {
	arrow := p.style(color.FgBlue)
	leaf := p.style(color.Faint)
	count := p.style(color.FgYellow, color.Bold)

	var sb strings.Builder
	for _, item := range tree.Flatten(items) {
		sb.WriteString(strings.Repeat("  ", item.Depth))
		switch {
		case len(item.Children) == 0:
			sb.WriteString(leaf.Sprint("•"))
		case item.Collapsed:
			sb.WriteString(arrow.Sprint("▶"))
		default:
			sb.WriteString(arrow.Sprint("▼"))
		}
		sb.WriteString(" ")
		sb.WriteString(item.ID)
		if item.Collapsed && len(item.Children) > 0 {
			sb.WriteString(count.Sprintf(" (%d)", tree.Count(item.Children)))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(p.Out, sb.String())
	return err
}

// Flat prints a flattened list, one row per item
func (p *Printer) Flat(flat []model.FlattenedItem) error {
	switch p.Format {
	case FormatTable:
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(p.header("ID", "PARENT", "DEPTH", "INDEX", "CHILDREN", "COLLAPSED")...)
		dim := p.style(color.Faint)
		for _, item := range flat {
			parent := item.ParentID
			if parent == "" {
				parent = dim.Sprint("-")
			}
			tbl.AddRow(item.ID, parent, item.Depth, item.Index, len(item.Children), item.Collapsed)
		}
		_, err := fmt.Fprintln(p.Out, tbl)
		return err
	case FormatMarkdown:
		var sb strings.Builder
		sb.WriteString("| id | parent | depth | index |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, item := range flat {
			fmt.Fprintf(&sb, "| %s | %s | %d | %d |\n", item.ID, item.ParentID, item.Depth, item.Index)
		}
		return p.markdown(sb.String())
	case FormatText:
		var sb strings.Builder
		for _, item := range flat {
			fmt.Fprintf(&sb, "%s\t%s\t%d\t%d\n", item.ID, item.ParentID, item.Depth, item.Index)
		}
		_, err := io.WriteString(p.Out, sb.String())
		return err
	default:
		return p.encode(flat)
	}
}

// ProjectionResult is the outcome of a projected drag
type ProjectionResult struct {
	ActiveID     string           `json:"active" yaml:"active"`
	OverID       string           `json:"over" yaml:"over"`
	Offset       float64          `json:"offset" yaml:"offset"`
	Projection   model.Projection `json:"projection" yaml:"projection"`
	Announcement string           `json:"announcement,omitempty" yaml:"announcement,omitempty"`
}

// Projection prints where a dragged item would land
func (p *Printer) Projection(r ProjectionResult) error {
	parent := r.Projection.ParentID
	if parent == "" {
		parent = "(top level)"
	}

	switch p.Format {
	case FormatTable:
		key := p.style(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(key.Sprint("active"), r.ActiveID)
		tbl.AddRow(key.Sprint("over"), r.OverID)
		tbl.AddRow(key.Sprint("offset"), strconv.FormatFloat(r.Offset, 'f', -1, 64))
		tbl.AddRow(key.Sprint("depth"), fmt.Sprintf("%d (min %d, max %d)", r.Projection.Depth, r.Projection.MinDepth, r.Projection.MaxDepth))
		tbl.AddRow(key.Sprint("parent"), parent)
		if r.Announcement != "" {
			tbl.AddRow(key.Sprint("announce"), p.style(color.FgGreen).Sprint(r.Announcement))
		}
		_, err := fmt.Fprintln(p.Out, tbl)
		return err
	case FormatMarkdown, FormatText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "- active: %s\n- over: %s\n- depth: %d (min %d, max %d)\n- parent: %s\n",
			r.ActiveID, r.OverID, r.Projection.Depth, r.Projection.MinDepth, r.Projection.MaxDepth, parent)
		if r.Announcement != "" {
			fmt.Fprintf(&sb, "- announcement: %s\n", r.Announcement)
		}
		if p.Format == FormatText {
			_, err := io.WriteString(p.Out, sb.String())
			return err
		}
		return p.markdown(sb.String())
	default:
		return p.encode(r)
	}
}

// Count prints a single number, labelled in table output
func (p *Printer) Count(label string, n int) error {
	switch p.Format {
	case FormatTable:
		_, err := fmt.Fprintf(p.Out, "%s %d\n", p.style(color.Bold).Sprint(label+":"), n)
		return err
	case FormatJSON, FormatYAML:
		return p.encode(map[string]int{label: n})
	default:
		_, err := fmt.Fprintf(p.Out, "%d\n", n)
		return err
	}
}

func (p *Printer) encode(v interface{}) error {
	switch p.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.Out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
}

// markdown writes md, rendered by glamour when RenderMarkdown is set
func (p *Printer) markdown(md string) error {
	if !p.RenderMarkdown {
		_, err := io.WriteString(p.Out, md)
		return err
	}

	width := p.WrapWidth
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(p.Out, out)
	return err
}
