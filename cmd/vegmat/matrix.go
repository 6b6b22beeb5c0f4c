package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/internal/iomatrix"
	"github.com/vegdata/vegmat/pkg/archive"
	"github.com/vegdata/vegmat/pkg/community"
	"github.com/vegdata/vegmat/pkg/config"
	"golang.org/x/sync/errgroup"
)

func getMatrixCmd() *cobra.Command {
	var (
		sizeClass float64
		renumber  bool
		exportDir string
		noArchive bool
	)

	cmd := &cobra.Command{
		Use:   "matrix [dataset...]",
		Short: "Builds aligned community and environmental matrices",
		Long: `Builds a site-by-species community matrix and its row-aligned
site-by-environment matrix from long-format survey observations.

Covers of the same species within one sampling event are averaged;
species absent from an event get zero. Site covariates are taken from
the first observation of each event and checked for constancy. The
row alignment of the two matrices is always verified; a divergence
aborts the build.

Without arguments every dataset from datasets.yaml is built.
Independent datasets build concurrently.

Examples:
  # Build everything declared in datasets.yaml
  vegmat matrix

  # Build one dataset, keep only 1000 m² plots, export CSV files
  vegmat matrix mont_tremblant --size-class 1000 --export ./out

  # Replace plot identifiers with ordinal site numbers
  vegmat matrix mont_tremblant --renumber`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			ctx := context.Background()

			// Override config with CLI flags if provided
			if cmd.Flags().Changed("size-class") {
				cfg.Update([]config.Option{
					config.OptBuildSizeClass(&sizeClass),
				})
			}
			if cmd.Flags().Changed("renumber") {
				cfg.Update([]config.Option{
					config.OptBuildRenumber(&renumber),
				})
			}
			cfg.Update([]config.Option{config.OptBuildDatasetNames(args)})

			selected, err := selectDatasets(cfg, cfg.Build.DatasetNames)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			op, err := connectOperator(ctx, cfg, selected)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if op != nil {
				defer op.Close()
			}

			var arch archive.Archive
			if !noArchive {
				if arch = openArchive(cfg); arch != nil {
					defer arch.Close()
				}
			}

			start := time.Now()
			results := make([]buildResult, len(selected))

			g, gCtx := errgroup.WithContext(ctx)
			g.SetLimit(cfg.JobsNumber)
			for i, ds := range selected {
				g.Go(func() error {
					dsStart := time.Now()
					paired, report, err := buildPaired(gCtx, cfg, ds, op)
					if err != nil {
						return err
					}
					if cfg.Build.Renumber != nil && *cfg.Build.Renumber {
						if err = paired.Renumber(); err != nil {
							return err
						}
					}
					results[i] = buildResult{
						ds:      ds,
						paired:  paired,
						report:  report,
						elapsed: time.Since(dsStart),
					}
					return nil
				})
			}
			if err = g.Wait(); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			for _, res := range results {
				if exportDir != "" {
					if err = exportPair(exportDir, res.ds.Name, res.paired); err != nil {
						gn.PrintErrorMessage(err)
						return err
					}
				}
				archiveMatrixRun(ctx, arch, res)
				printBuildSummary(res)
			}

			successMsg := gnlib.FormatMessage(fmt.Sprintf(
				"<em>✓ Built %s in %s.</em>",
				english.Plural(len(results), "matrix pair", ""),
				gnfmt.TimeString(time.Since(start).Seconds()),
			), nil)
			fmt.Println(successMsg)

			return nil
		},
	}

	cmd.Flags().Float64Var(&sizeClass, "size-class", 0,
		"keep only plots of this size class in square meters")
	cmd.Flags().BoolVar(&renumber, "renumber", false,
		"relabel matrix rows with ordinal site numbers after alignment")
	cmd.Flags().StringVar(&exportDir, "export", "",
		"directory for community and environment CSV exports")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false,
		"do not record this build in the run archive")

	return cmd
}

// exportPair writes the community and environmental matrices of one
// dataset as CSV files named after it.
func exportPair(dir, name string, paired *community.Paired) error {
	commPath := filepath.Join(dir, name+"_community.csv")
	if err := iomatrix.WriteMatrixCSV(commPath, paired.Community); err != nil {
		return err
	}

	envPath := filepath.Join(dir, name+"_env.csv")
	if err := iomatrix.WriteMatrixCSV(envPath, paired.Env); err != nil {
		return err
	}

	gn.Info("Exported <em>%s</em> and <em>%s</em>", commPath, envPath)
	return nil
}

func archiveMatrixRun(
	ctx context.Context,
	arch archive.Archive,
	res buildResult,
) {
	if arch == nil {
		return
	}
	now := time.Now()
	comm := res.paired.Community
	envSnap := res.paired.Env.Snapshot()
	run := archive.Run{
		ID:        archive.NewID(archive.KindMatrix, res.ds.Name, now),
		Kind:      archive.KindMatrix,
		Dataset:   res.ds.Name,
		CreatedAt: now,
		Rows:      comm.Rows(),
		Cols:      comm.Cols(),
		Metrics:   map[string]float64{"fill": fill(comm)},
		Payload: &archive.Payload{
			Community: comm.Snapshot(),
			Env:       &envSnap,
		},
	}
	saveRun(ctx, arch, run)
}

func printBuildSummary(res buildResult) {
	comm := res.paired.Community
	gn.Info(
		`Dataset <em>%s</em>: %s sites × %s species, fill %.1f%%.
Kept %s of %s observations (skipped %s, canonicalized %s) in %s.`,
		res.ds.Name,
		humanize.Comma(int64(comm.Rows())),
		humanize.Comma(int64(comm.Cols())),
		100*fill(comm),
		humanize.Comma(int64(res.report.Kept)),
		humanize.Comma(int64(res.report.Rows)),
		humanize.Comma(int64(res.report.Skipped)),
		humanize.Comma(int64(res.report.Canonical)),
		gnfmt.TimeString(res.elapsed.Seconds()),
	)
}
