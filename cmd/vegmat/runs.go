package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/internal/ioarchive"
	"github.com/vegdata/vegmat/pkg/config"
)

func getRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Lists archived analysis runs",
		Long: `Lists the analyses recorded in the local run archive, newest
first: when each ran, what it was, the matrix dimensions, the
transformation, and the key metrics of the result.

Every matrix build, PCA and RDA is archived unless it ran with
--no-archive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			ctx := context.Background()

			path := config.ArchiveFilePath(cfg.HomeDir)
			arch, err := ioarchive.New(path)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer arch.Close()

			runs, err := arch.List(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			if len(runs) == 0 {
				gn.Info("The run archive at <em>%s</em> is empty.", path)
				return nil
			}

			fmt.Printf("%-17s %-7s %-20s %-11s %-10s %s\n",
				"created", "kind", "dataset", "size", "transform", "metrics")
			for _, r := range runs {
				transform := r.Transform
				if transform == "" {
					transform = "-"
				}
				fmt.Printf("%-17s %-7s %-20s %-11s %-10s %s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.Kind,
					r.Dataset,
					fmt.Sprintf("%d×%d", r.Rows, r.Cols),
					transform,
					formatMetrics(r.Metrics),
				)
			}
			fmt.Println()
			gn.Info("%s in <em>%s</em>.",
				english.Plural(len(runs), "archived run", ""), path)

			return nil
		},
	}

	return cmd
}

func formatMetrics(m map[string]float64) string {
	keys := slices.Sorted(maps.Keys(m))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.3f", k, m[k]))
	}
	return strings.Join(parts, " ")
}
