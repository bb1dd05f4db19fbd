package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/pipeline"
)

// browseCommand creates the interactive edge browser.
func (c *CLI) browseCommand() *cobra.Command {
	var sf selectFlags

	cmd := &cobra.Command{
		Use:   "browse [AutoDrive_config.xml]",
		Short: "Browse classified connections interactively",
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

			model := NewEdgeListModel(result.Classification, result.Input.Doc.Markers)
			if len(model.Rows) == 0 {
				printInfo("No connections inside %s", result.Selection)
				return nil
			}
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(EdgeListModel); ok && m.Selected != nil {
				r := m.Selected
				printKeyValue("edge", fmt.Sprintf("%d → %d", r.From, r.To))
				printKeyValue("class", r.Class.String())
				printKeyValue("length", fmt.Sprintf("%.3f", r.Length))
				if r.Marker != "" {
					printKeyValue("marker", r.Marker)
				}
			}
			return nil
		},
	}

	addSelectFlags(cmd, &sf)
	return cmd
}
