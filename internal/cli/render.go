package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/pipeline"
	"github.com/matzehuels/adroutes/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	selectFlags
	output    string  // output file (single format) or base path
	vizType   string  // "diagram" or "nodelink"
	formats   string  // comma-separated output formats
	title     string  // plot heading
	width     float64 // canvas width in pixels
	height    float64 // canvas height in pixels
	noLabels  bool    // hide waypoint id labels
	noLegend  bool    // hide the class legend
	noMarkers bool    // hide map marker names
	refresh   bool    // re-render even when cached
	quiet     bool    // no spinner
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [AutoDrive_config.xml]",
		Short: "Classify a waypoint selection and draw it",
		Long: `Render loads an AutoDrive config (or the built-in sample), classifies the
connections inside the selection and writes the diagram in every requested
format. Output files are named after the input unless --output is given.`,
		Example: `  adroutes render
  adroutes render AutoDrive_config.xml --select 100-180 --format svg,png
  adroutes render AutoDrive_config.xml --region 0,0,250,250 --type nodelink -o yard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.renderPipelineOptions(cmd, args, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, &opts)
		},
	}

	addSelectFlags(cmd, &opts.selectFlags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "diagram type: diagram (default), nodelink")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().Float64Var(&opts.width, "width", 0, fmt.Sprintf("canvas width (default %.0f)", pipeline.DefaultWidth))
	cmd.Flags().Float64Var(&opts.height, "height", 0, fmt.Sprintf("canvas height (default %.0f)", pipeline.DefaultHeight))
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide waypoint id labels")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "hide the legend")
	cmd.Flags().BoolVar(&opts.noMarkers, "no-markers", false, "hide map marker names")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "no progress spinner")
	_ = cmd.RegisterFlagCompletionFunc("type", completeValues(render.Types, false))
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(render.Formats, true))

	return cmd
}

// renderPipelineOptions turns flags, arguments and config into pipeline options.
func (c *CLI) renderPipelineOptions(cmd *cobra.Command, args []string, opts *renderOpts) (pipeline.Options, error) {
	popts := pipeline.Options{
		Type:        opts.vizType,
		Title:       opts.title,
		Width:       opts.width,
		Height:      opts.height,
		HideLabels:  opts.noLabels,
		HideLegend:  opts.noLegend,
		HideMarkers: opts.noMarkers,
		Refresh:     opts.refresh,
	}
	if opts.formats != "" {
		formats, err := render.ParseFormats(opts.formats)
		if err != nil {
			return pipeline.Options{}, err
		}
		popts.Formats = formats
	}
	popts = c.pipelineOptions(cmd, args, opts.selectFlags, popts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return popts, nil
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if !opts.quiet {
		spin = newSpinnerWithContext(ctx, "Rendering "+sourceName(popts.Input))
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Rendered " + result.Selection.String())

	paths := outputPaths(opts.output, popts.Input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]))
	}

	printSuccess("Rendered %s", StyleHighlight.Render(sourceName(popts.Input)))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	printStats(result.Selection.Len(), result.Classification.Counts(), result.CacheInfo.RenderHit)
	if len(result.Dropped) > 0 {
		printWarning("%d selected ids do not exist in the input", len(result.Dropped))
	}
	return nil
}

// outputPaths maps every format to its output file.
// A single format with an explicit output uses that path as-is. Otherwise
// the base path (output without a known format extension, or the input
// name) gets one extension per format.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, the input name is used in the working directory.
// If output has a format extension (.svg, .pdf, etc.), it is stripped.
func basePath(output, input string) string {
	if output == "" {
		return inputBase(input)
	}
	ext := filepath.Ext(output)
	if render.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sourceName(input string) string {
	if input == "" {
		return pipeline.SourceSample
	}
	return input
}
