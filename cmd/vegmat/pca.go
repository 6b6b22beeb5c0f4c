package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/internal/iomatrix"
	"github.com/vegdata/vegmat/pkg/archive"
	"github.com/vegdata/vegmat/pkg/community"
	"github.com/vegdata/vegmat/pkg/ordination"
	"github.com/vegdata/vegmat/pkg/transform"
)

func getPCACmd() *cobra.Command {
	var (
		transformName string
		exportDir     string
		noArchive     bool
	)

	cmd := &cobra.Command{
		Use:   "pca <dataset>",
		Short: "Runs principal component analysis on a community matrix",
		Long: `Builds the community matrix of one dataset, optionally transforms
it, and fits a principal component analysis on the covariance of its
columns. The eigenvalue table shows how much variance each axis
carries.

Raw species covers exaggerate abundant species; a Hellinger or chord
transformation before PCA keeps double zeros from acting as
similarity.

Examples:
  vegmat pca mont_tremblant
  vegmat pca mont_tremblant --transform hellinger
  vegmat pca mont_tremblant --transform hellinger --export ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			ctx := context.Background()

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

			start := time.Now()
			p, err := ordination.FitPCA(comm)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			printEigenvalues(p)

			if exportDir != "" {
				if err = exportPCA(exportDir, args[0], p); err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
			}

			if !noArchive {
				if arch := openArchive(cfg); arch != nil {
					defer arch.Close()
					archivePCARun(ctx, arch, args[0], transformName, p, comm)
				}
			}

			successMsg := gnlib.FormatMessage(fmt.Sprintf(
				"<em>✓ PCA of %s fitted in %s.</em>",
				args[0],
				gnfmt.TimeString(time.Since(start).Seconds()),
			), nil)
			fmt.Println(successMsg)

			return nil
		},
	}

	cmd.Flags().StringVar(&transformName, "transform", "",
		"community transformation before analysis: "+
			strings.Join(transform.Names, ", "))
	cmd.Flags().StringVar(&exportDir, "export", "",
		"directory for eigenvalue, score and loading CSV exports")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false,
		"do not record this analysis in the run archive")

	return cmd
}

func printEigenvalues(p *ordination.PCA) {
	props := p.Proportions()
	fmt.Println()
	fmt.Printf("%-6s %14s %12s %12s\n",
		"axis", "eigenvalue", "proportion", "cumulative")
	var cum float64
	for i, eig := range p.Eigenvalues() {
		cum += props[i]
		fmt.Printf("%-6s %14.4f %12.4f %12.4f\n",
			fmt.Sprintf("PC%d", i+1), eig, props[i], cum)
	}
	fmt.Println()
}

// exportPCA writes the eigenvalue table, site scores and descriptor
// loadings of one analysis as CSV files named after the dataset.
func exportPCA(dir, name string, p *ordination.PCA) error {
	eigPath := filepath.Join(dir, name+"_eigenvalues.csv")
	if err := iomatrix.WriteEigenvaluesCSV(eigPath, p); err != nil {
		return err
	}

	scoresPath := filepath.Join(dir, name+"_scores.csv")
	if err := iomatrix.WriteScoresCSV(scoresPath, p); err != nil {
		return err
	}

	loadingsPath := filepath.Join(dir, name+"_loadings.csv")
	if err := iomatrix.WriteLoadingsCSV(loadingsPath, p); err != nil {
		return err
	}

	gn.Info("Exported eigenvalues, scores and loadings to <em>%s</em>", dir)
	return nil
}

func archivePCARun(
	ctx context.Context,
	arch archive.Archive,
	dataset, transformName string,
	p *ordination.PCA,
	comm *community.Matrix,
) {
	now := time.Now()
	props := p.Proportions()
	metrics := map[string]float64{
		"total_variance": p.TotalVariance(),
		"axis1":          props[0],
	}
	if len(props) > 1 {
		metrics["axis2"] = props[1]
	}

	run := archive.Run{
		ID:        archive.NewID(archive.KindPCA, dataset, now),
		Kind:      archive.KindPCA,
		Dataset:   dataset,
		CreatedAt: now,
		Rows:      comm.Rows(),
		Cols:      comm.Cols(),
		Transform: transformName,
		Metrics:   metrics,
		Payload:   &archive.Payload{Community: comm.Snapshot()},
	}
	saveRun(ctx, arch, run)
}
