package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/errors"
	adio "github.com/matzehuels/adroutes/pkg/io"
	"github.com/matzehuels/adroutes/pkg/pipeline"
)

// extractCommand creates the command that writes a selection as a new
// AutoDrive config.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		sf     selectFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "extract [AutoDrive_config.xml]",
		Short: "Write the selected waypoints as a standalone AutoDrive config",
		Long: `Extract keeps the selected waypoints, drops every connection and map marker
that leaves the selection and writes the result renumbered from 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New(errors.ErrCodeInvalidPath, "--output is required")
			}
			opts := c.pipelineOptions(cmd, args, sf, pipeline.Options{})
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			in, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			sel, dropped, err := pipeline.Select(in, opts)
			if err != nil {
				return err
			}
			doc, err := adio.Extract(in.Doc, sel.Contains)
			if err != nil {
				return err
			}
			if err := adio.ExportAutoDrive(doc, output); err != nil {
				return err
			}

			printSuccess("Extracted %d waypoints from %s", doc.Table.Len(), StyleHighlight.Render(in.Source))
			printFile(output)
			if len(doc.Markers) > 0 {
				printDetail("%d map markers kept", len(doc.Markers))
			}
			if len(dropped) > 0 {
				printWarning("%d selected ids do not exist in the input", len(dropped))
			}
			return nil
		},
	}

	addSelectFlags(cmd, &sf)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output AutoDrive config file")
	return cmd
}
