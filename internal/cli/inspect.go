package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// maxSamples caps the distinct values listed for string fields.
const maxSamples = 3

// fieldSummary describes one column of a loaded dataset.
type fieldSummary struct {
	Name     string
	Kind     data.Kind
	Values   int
	Nulls    int
	Distinct int
	// Min and Max are set for numeric and temporal fields.
	Min, Max data.Value
	Samples  []string
}

// summarize computes per-field statistics in schema order.
func summarize(ds *data.Dataset) []fieldSummary {
	out := make([]fieldSummary, 0, len(ds.Fields))
	for _, f := range ds.Fields {
		s := fieldSummary{Name: f.Name, Kind: f.Kind}
		seen := make(map[string]bool)
		for _, r := range ds.Records {
			v := r[f.Name]
			if v.IsNull() {
				s.Nulls++
				continue
			}
			s.Values++
			text := v.Text()
			if !seen[text] {
				seen[text] = true
				if len(s.Samples) < maxSamples {
					s.Samples = append(s.Samples, text)
				}
			}
			if (f.Kind == data.KindNumber || f.Kind == data.KindTime) && v.Kind() == f.Kind {
				if s.Min.IsNull() || v.Less(s.Min) {
					s.Min = v
				}
				if s.Max.IsNull() || s.Max.Less(v) {
					s.Max = v
				}
			}
		}
		s.Distinct = len(seen)
		out = append(out, s)
	}
	return out
}

// describe returns the range of an ordered field or sample values of a
// categorical one.
func (s fieldSummary) describe() string {
	if !s.Min.IsNull() {
		return s.Min.Text() + " … " + s.Max.Text()
	}
	if len(s.Samples) == 0 {
		return ""
	}
	quoted := make([]string, len(s.Samples), len(s.Samples)+1)
	for i, v := range s.Samples {
		quoted[i] = strconv.Quote(v)
	}
	if s.Distinct > len(s.Samples) {
		quoted = append(quoted, "…")
	}
	return strings.Join(quoted, ", ")
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var inputFormat, sheet string

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the inferred schema of a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := pipeline.Load(cmd.Context(), pipeline.Options{
				Input:       args[0],
				InputFormat: inputFormat,
				Sheet:       sheet,
			})
			if err != nil {
				return err
			}
			printSchema(cmd.OutOrStdout(), args[0], ds)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format (default: from extension)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name")
	return cmd
}

func printSchema(w io.Writer, path string, ds *data.Dataset) {
	fmt.Fprintln(w, StyleTitle.Render(path)+StyleDim.Render(fmt.Sprintf("  %d rows · %d fields", ds.Len(), len(ds.Fields))))

	summaries := summarize(ds)
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			s.Kind.String(),
			strconv.Itoa(s.Values),
			strconv.Itoa(s.Nulls),
			strconv.Itoa(s.Distinct),
			s.describe(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Kind", "Values", "Nulls", "Distinct", "Range / Sample").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return StyleValue.Padding(0, 1)
			case col >= 2 && col <= 4:
				return StyleNumber.Padding(0, 1)
			default:
				return StyleDim.Padding(0, 1)
			}
		})
	fmt.Fprintln(w, t.Render())

	if g := ds.Graph; g != nil {
		groups := make([]string, 0)
		for _, n := range g.Nodes {
			if n.Group != "" && !slices.Contains(groups, n.Group) {
				groups = append(groups, n.Group)
			}
		}
		printInfo(w, "graph: %d nodes, %d links, %d groups", len(g.Nodes), len(g.Links), len(groups))
	}
	if g := ds.Geo; g != nil {
		b := g.Bound()
		printInfo(w, "map: %d features, lon %.4g to %.4g, lat %.4g to %.4g",
			len(g.Features), b.Min.Lon(), b.Max.Lon(), b.Min.Lat(), b.Max.Lat())
	}
}
