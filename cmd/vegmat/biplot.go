package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/internal/iomatrix"
	"github.com/vegdata/vegmat/internal/ioplot"
	"github.com/vegdata/vegmat/pkg/config"
	"github.com/vegdata/vegmat/pkg/ordination"
	"github.com/vegdata/vegmat/pkg/transform"
)

func getBiplotCmd() *cobra.Command {
	var (
		scaling       int
		transformName string
		outPath       string
		svgPath       string
		width         float64
		height        float64
	)

	cmd := &cobra.Command{
		Use:   "biplot <dataset>",
		Short: "Projects a fitted PCA onto two axes for plotting",
		Long: `Fits a PCA on the community matrix of one dataset and lays out a
biplot of its first two axes: site points, descriptor arrows, axis
labels with explained variance, and the equilibrium circle where the
scaling has one.

Scaling 1 preserves distances among sites; scaling 2 preserves
correlations among descriptors. Pick the scaling by the question, not
by looks.

The layout is always written as CSV. With --svg the biplot is also
rendered as an image.

Examples:
  vegmat biplot mont_tremblant --scaling 1
  vegmat biplot mont_tremblant --transform hellinger --svg biplot.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			ctx := context.Background()

			// Override config with CLI flags if provided
			if cmd.Flags().Changed("scaling") {
				cfg.Update([]config.Option{config.OptPlotScaling(scaling)})
			}
			if cmd.Flags().Changed("width") {
				cfg.Update([]config.Option{config.OptPlotWidth(width)})
			}
			if cmd.Flags().Changed("height") {
				cfg.Update([]config.Option{config.OptPlotHeight(height)})
			}

			sc, err := ordination.ParseScaling(cfg.Plot.Scaling)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			res, err := buildOne(ctx, cfg, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			comm, err := applyTransform(transformName, res.paired.Community)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			p, err := ordination.FitPCA(comm)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			layout, err := ordination.Biplot(p, ordination.BiplotOptions{
				Scaling: sc,
			})
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			if outPath == "" {
				outPath = args[0] + "_biplot.csv"
			}
			if err = iomatrix.WriteBiplotCSV(outPath, layout); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			gn.Info("Biplot layout (%s) saved to <em>%s</em>",
				layout.Scaling, outPath)

			if svgPath != "" {
				err = ioplot.Render(
					svgPath, layout, cfg.Plot.Width, cfg.Plot.Height,
				)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				gn.Info("Biplot image saved to <em>%s</em>", svgPath)
			}

			successMsg := gnlib.FormatMessage(fmt.Sprintf(
				"<em>✓ Biplot of %s ready (%s).</em>",
				args[0], layout.Scaling,
			), nil)
			fmt.Println(successMsg)

			return nil
		},
	}

	cmd.Flags().IntVar(&scaling, "scaling", 0,
		"biplot scaling: 1 preserves site distances, 2 descriptor correlations")
	cmd.Flags().StringVar(&transformName, "transform", "",
		"community transformation before analysis: "+
			strings.Join(transform.Names, ", "))
	cmd.Flags().StringVar(&outPath, "out", "",
		"path of the layout CSV (default <dataset>_biplot.csv)")
	cmd.Flags().StringVar(&svgPath, "svg", "",
		"also render the biplot image to this path")
	cmd.Flags().Float64Var(&width, "width", 0,
		"image width in inches")
	cmd.Flags().Float64Var(&height, "height", 0,
		"image height in inches")

	return cmd
}
