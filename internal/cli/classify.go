package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/pipeline"
)

// maxListedEdges bounds the edge list of one class in the summary table.
const maxListedEdges = 8

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var sf selectFlags
	var all bool

	cmd := &cobra.Command{
		Use:   "classify [AutoDrive_config.xml]",
		Short: "Print the connection classes of a waypoint selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, args, sf, pipeline.Options{})
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Classify(cmd.Context(), opts)
			if err != nil {
				return err
			}
			limit := maxListedEdges
			if all {
				limit = 0
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s · %s", sourceName(opts.Input), result.Selection)))
			fmt.Fprintln(w, classTable(result, limit))
			writeSummary(w, result)
			return nil
		},
	}

	addSelectFlags(cmd, &sf)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every edge instead of the first few per class")
	return cmd
}

// classTable renders one row per class: count, total length and edges.
// A limit of zero lists every edge.
func classTable(result *pipeline.Result, limit int) string {
	c := result.Classification
	lists := map[network.Class][]string{
		network.ClassBidirectional: stringsOf(c.Bidirectional),
		network.ClassPriority:      stringsOf(c.Priority),
		network.ClassSubPriority:   stringsOf(c.SubPriority),
		network.ClassBackwards:     stringsOf(c.Backwards),
	}

	rows := make([][]string, 0, len(network.Classes))
	for _, class := range network.Classes {
		edges := lists[class]
		listed := edges
		if limit > 0 && len(listed) > limit {
			listed = append(listed[:limit:limit], fmt.Sprintf("… +%d", len(edges)-limit))
		}
		rows = append(rows, []string{
			class.String(),
			strconv.Itoa(len(edges)),
			strconv.FormatFloat(result.Geometry.Length[class], 'f', 1, 64),
			strings.Join(listed, " "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Class", "Count", "Length", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return lipgloss.NewStyle().Foreground(classColor(network.Classes[row])).Padding(0, 1)
			case col == 1 || col == 2:
				return StyleNumber.Padding(0, 1)
			}
			return StyleDim.Padding(0, 1)
		}).
		Render()
}

func writeSummary(w io.Writer, result *pipeline.Result) {
	g := result.Geometry
	b := g.Bounds
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d waypoints · %d edges · %d self-loops dropped",
		g.Waypoints, g.Edges, g.SelfLoops)))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("x %.3f..%.3f · z %.3f..%.3f",
		b.Min.X(), b.Max.X(), b.Min.Y(), b.Max.Y())))
	if len(result.Dropped) > 0 {
		fmt.Fprintln(w, StyleWarning.Render(fmt.Sprintf("%d selected ids not in the input: %s",
			len(result.Dropped), network.NewSelection(result.Dropped...))))
	}
}

func stringsOf[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
