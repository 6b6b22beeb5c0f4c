package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/pkg/archive"
	"github.com/vegdata/vegmat/pkg/community"
	"github.com/vegdata/vegmat/pkg/ordination"
	"github.com/vegdata/vegmat/pkg/transform"
)

func getRDACmd() *cobra.Command {
	var (
		constraints   []string
		transformName string
		dummy         bool
		noArchive     bool
	)

	cmd := &cobra.Command{
		Use:   "rda <dataset>",
		Short: "Runs redundancy analysis against environmental constraints",
		Long: `Builds the community and environmental matrices of one dataset and
fits a redundancy analysis: the community matrix is regressed on the
chosen environmental columns, and the fitted values are ordinated.

The inertia decomposition shows how much community variance the
constraints explain; the adjusted R² shrinks that share by the
degrees of freedom the constraints consume, so models with different
numbers of constraints stay comparable.

Factor covariates cannot constrain an ordination directly; with
--dummy they are expanded into indicator columns first, one per level
after the reference, named like disturbance=VIRGIN.

Examples:
  vegmat rda mont_tremblant --constraints elevation,tci
  vegmat rda mont_tremblant --transform hellinger \
    --constraints elevation,solar_rad
  vegmat rda mont_tremblant --dummy \
    --constraints elevation,disturbance=VIRGIN`,
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

			env := res.paired.Env
			if dummy {
				if env, err = transform.DummyEncode(env); err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
			}

			start := time.Now()
			r, err := ordination.FitRDA(comm, env, constraints)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			rep, err := ordination.AdjustedR2(r)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			printInertia(r)
			fmt.Printf("R² %.4f, adjusted R² %.4f (n=%d, constraint rank %d)\n",
				rep.R2, rep.R2Adj, rep.N, rep.Rank)
			fmt.Println()
			fmt.Println("Canonical axes:")
			printEigenvalues(r.Ordination())

			if !noArchive {
				if arch := openArchive(cfg); arch != nil {
					defer arch.Close()
					archiveRDARun(
						ctx, arch, args[0], transformName, r, rep, comm,
					)
				}
			}

			successMsg := gnlib.FormatMessage(fmt.Sprintf(
				"<em>✓ RDA of %s against %s fitted in %s.</em>",
				args[0],
				strings.Join(r.Constraints(), ", "),
				gnfmt.TimeString(time.Since(start).Seconds()),
			), nil)
			fmt.Println(successMsg)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&constraints, "constraints", nil,
		"environmental columns constraining the ordination")
	cmd.Flags().StringVar(&transformName, "transform", "",
		"community transformation before analysis: "+
			strings.Join(transform.Names, ", "))
	cmd.Flags().BoolVar(&dummy, "dummy", false,
		"expand factor covariates into indicator columns before constraining")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false,
		"do not record this analysis in the run archive")

	return cmd
}

func printInertia(r *ordination.RDA) {
	total := r.TotalInertia()
	fmt.Println()
	fmt.Printf("%-14s %14s %12s\n", "inertia", "value", "proportion")
	fmt.Printf("%-14s %14.4f %12.4f\n", "total", total, 1.0)
	fmt.Printf("%-14s %14.4f %12.4f\n", "constrained",
		r.ConstrainedInertia(), r.ConstrainedInertia()/total)
	fmt.Printf("%-14s %14.4f %12.4f\n", "unconstrained",
		r.UnconstrainedInertia(), r.UnconstrainedInertia()/total)
	fmt.Println()
}

func archiveRDARun(
	ctx context.Context,
	arch archive.Archive,
	dataset, transformName string,
	r *ordination.RDA,
	rep ordination.R2Report,
	comm *community.Matrix,
) {
	now := time.Now()
	run := archive.Run{
		ID:        archive.NewID(archive.KindRDA, dataset, now),
		Kind:      archive.KindRDA,
		Dataset:   dataset,
		CreatedAt: now,
		Rows:      comm.Rows(),
		Cols:      comm.Cols(),
		Transform: transformName,
		Metrics: map[string]float64{
			"r2":          rep.R2,
			"r2adj":       rep.R2Adj,
			"constrained": r.ConstrainedInertia(),
			"total":       r.TotalInertia(),
		},
		Payload: &archive.Payload{Community: comm.Snapshot()},
	}
	saveRun(ctx, arch, run)
}
