package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/pipeline"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// nearestCommand creates the nearest-waypoint lookup.
func (c *CLI) nearestCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "nearest x z [AutoDrive_config.xml]",
		Short: "Find the waypoints closest to a world position",
		Long: `Nearest lists the waypoints closest to the world position (x, z).
Put "--" before the coordinates when one of them is negative.`,
		Example: `  adroutes nearest -- 40 -1675
  adroutes nearest -n 5 -- 312.5 -88 AutoDrive_config.xml`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, z, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--count must be at least 1")
			}
			opts := pipeline.Options{Logger: c.Logger}
			if len(args) == 3 {
				opts.Input = args[2]
			}
			in, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), nearestTable(in, x, z, count))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of waypoints to list")
	return cmd
}

func parsePosition(xs, zs string) (x, z float64, err error) {
	if x, err = strconv.ParseFloat(xs, 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "x coordinate %q", xs)
	}
	if z, err = strconv.ParseFloat(zs, 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "z coordinate %q", zs)
	}
	return x, z, nil
}

// nearestTable lists the count waypoints closest to (x, z).
func nearestTable(in *pipeline.Input, x, z float64, count int) string {
	names := waypoint.MarkersFor(in.Doc.Markers, in.Table().Has)
	var rows [][]string
	for _, h := range in.Spatial.NearestN(x, z, count) {
		wp, _ := in.Table().Get(h.ID)
		name := "—"
		if m, ok := names[h.ID]; ok {
			name = m.Name
		}
		rows = append(rows, []string{
			h.ID.String(),
			fmt.Sprintf("%.3f", h.Distance),
			fmt.Sprintf("%.3f", wp.X),
			fmt.Sprintf("%.3f", wp.Z),
			wp.Flag.String(),
			name,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Waypoint", "Distance", "X", "Z", "Flag", "Marker").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Render()
}
