package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/vegdata/vegmat/pkg/survey"
)

func getSummaryCmd() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "summary <dataset>",
		Short: "Profiles a survey table before building matrices",
		Long: `Profiles the observations of one dataset without building its
matrices: row counts, sampling events, species, prospective matrix
fill, size classes present, and the most frequent species.

The profile helps to choose a size-class filter and a transformation
before running 'vegmat matrix' or an ordination.

Examples:
  vegmat summary mont_tremblant
  vegmat summary mont_tremblant --top 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			ctx := context.Background()

			selected, err := selectDatasets(cfg, args)
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

			obs, report, err := newReader(cfg, selected[0], op).Read(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			printProfile(selected[0].Name, report, profileObservations(obs, topN))
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 10,
		"number of most frequent species to list")

	return cmd
}

// speciesFreq is one species with the number of sampling events it
// occurs in.
type speciesFreq struct {
	name    string
	samples int
}

// sizeClassCount is one plot size class with the number of sampling
// events recorded at it.
type sizeClassCount struct {
	sizeClass float64
	samples   int
}

// tableProfile summarizes a survey table the way an ecologist sizes
// it up before building matrices.
type tableProfile struct {
	samples     int
	species     int
	cells       int
	sizeClasses []sizeClassCount
	top         []speciesFreq
}

// profileObservations computes the profile of a read survey. The fill
// fraction of the prospective matrix is cells over samples×species;
// species frequency counts distinct sampling events, not rows.
func profileObservations(
	obs []survey.Observation,
	topN int,
) tableProfile {
	samples := make(map[string]bool)
	bySpecies := make(map[string]map[string]bool)
	bySizeClass := make(map[float64]map[string]bool)
	cells := make(map[string]bool)

	for _, o := range obs {
		key := o.SampleKey()
		samples[key] = true

		if bySpecies[o.Species] == nil {
			bySpecies[o.Species] = make(map[string]bool)
		}
		bySpecies[o.Species][key] = true

		if bySizeClass[o.SizeClass] == nil {
			bySizeClass[o.SizeClass] = make(map[string]bool)
		}
		bySizeClass[o.SizeClass][key] = true

		cells[key+"\x00"+o.Species] = true
	}

	freqs := make([]speciesFreq, 0, len(bySpecies))
	for name, keys := range bySpecies {
		freqs = append(freqs, speciesFreq{name: name, samples: len(keys)})
	}
	slices.SortFunc(freqs, func(a, b speciesFreq) int {
		if d := b.samples - a.samples; d != 0 {
			return d
		}
		return strings.Compare(a.name, b.name)
	})
	top := freqs
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	sizes := make([]sizeClassCount, 0, len(bySizeClass))
	for sc, keys := range bySizeClass {
		sizes = append(sizes, sizeClassCount{
			sizeClass: sc,
			samples:   len(keys),
		})
	}
	slices.SortFunc(sizes, func(a, b sizeClassCount) int {
		switch {
		case a.sizeClass < b.sizeClass:
			return -1
		case a.sizeClass > b.sizeClass:
			return 1
		}
		return 0
	})

	return tableProfile{
		samples:     len(samples),
		species:     len(bySpecies),
		cells:       len(cells),
		sizeClasses: sizes,
		top:         top,
	}
}

func printProfile(
	name string,
	report survey.ReadReport,
	prof tableProfile,
) {
	gn.Info("Survey profile for <em>%s</em>", name)
	fmt.Println(strings.Repeat("─", 60))

	fmt.Printf("  %-22s %s (kept %s, skipped %s)\n", "rows",
		humanize.Comma(int64(report.Rows)),
		humanize.Comma(int64(report.Kept)),
		humanize.Comma(int64(report.Skipped)),
	)
	if report.Canonical > 0 {
		fmt.Printf("  %-22s %s\n", "canonicalized names",
			humanize.Comma(int64(report.Canonical)))
	}
	fmt.Printf("  %-22s %s\n", "sampling events",
		humanize.Comma(int64(prof.samples)))
	fmt.Printf("  %-22s %s\n", "species",
		humanize.Comma(int64(prof.species)))

	totalCells := prof.samples * prof.species
	if totalCells > 0 {
		fmt.Printf("  %-22s %.1f%% of %s cells\n", "prospective fill",
			100*float64(prof.cells)/float64(totalCells),
			humanize.Comma(int64(totalCells)),
		)
	}

	if len(prof.sizeClasses) > 0 {
		parts := make([]string, len(prof.sizeClasses))
		for i, sc := range prof.sizeClasses {
			parts[i] = fmt.Sprintf("%g m² ×%d", sc.sizeClass, sc.samples)
		}
		fmt.Printf("  %-22s %s\n", "size classes",
			strings.Join(parts, ", "))
	}

	if len(prof.top) > 0 {
		fmt.Println()
		fmt.Println("Most frequent species:")
		for i, sp := range prof.top {
			pct := 100 * float64(sp.samples) / float64(prof.samples)
			fmt.Printf("  %3d. %-34s %5d events %6.1f%%\n",
				i+1, sp.name, sp.samples, pct)
		}
	}
	fmt.Println(strings.Repeat("─", 60))
}
