// compare_matrices compares two exported matrices cell by cell. This is
// a validation tool for checking that a rebuilt matrix, after a change
// to a dataset descriptor, filter or reader, still agrees with an
// archived export.
//
// It works on community and environmental exports alike. Factor codes
// depend on the order levels were first seen, so factor columns are
// compared by level name, numeric cells by absolute difference.
//
// Usage:
//
//	go run tools/compare_matrices.go --left runs/woods_community.csv --right /tmp/woods_community.csv
//	go run tools/compare_matrices.go --left old_env.csv --right new_env.csv --tolerance 1e-6
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/vegdata/vegmat/internal/iomatrix"
	"github.com/vegdata/vegmat/pkg/community"
)

type ComparisonResult struct {
	LeftRows       int
	LeftCols       int
	RightRows      int
	RightCols      int
	SharedRows     []string
	SharedCols     []string
	ShapeMatch     bool
	RowLabelsMatch bool
	ColLabelsMatch bool
	CellsMatch     bool
	CellMismatches int
	TypeMismatches int
	MaxAbsDiff     float64
}

func main() {
	left := flag.String("left", "", "Path to the first matrix CSV")
	right := flag.String("right", "", "Path to the second matrix CSV")
	tolerance := flag.Float64("tolerance", 1e-9,
		"Absolute difference below which numeric cells count as equal")
	maxDiffs := flag.Int("max-diffs", 10,
		"Number of differing labels or cells to print")

	flag.Parse()

	if *left == "" || *right == "" {
		fmt.Println("Error: --left and --right are required")
		flag.Usage()
		os.Exit(1)
	}

	leftMat, err := iomatrix.ReadMatrixCSV(*left)
	if err != nil {
		log.Fatalf("Failed to read left matrix: %v", err)
	}

	rightMat, err := iomatrix.ReadMatrixCSV(*right)
	if err != nil {
		log.Fatalf("Failed to read right matrix: %v", err)
	}

	fmt.Printf("Comparing %s\n  against %s\n", *left, *right)
	fmt.Println("===")
	fmt.Println()

	result := &ComparisonResult{}

	// 1. Compare shape
	fmt.Println("1. Shape")
	fmt.Println("--------")
	compareShape(leftMat, rightMat, result)

	// 2. Compare row labels
	fmt.Println("\n2. Row Labels")
	fmt.Println("-------------")
	result.SharedRows, result.RowLabelsMatch = compareLabels(
		leftMat.RowLabels(), rightMat.RowLabels(), *maxDiffs)

	// 3. Compare column labels
	fmt.Println("\n3. Column Labels")
	fmt.Println("----------------")
	result.SharedCols, result.ColLabelsMatch = compareLabels(
		leftMat.ColLabels(), rightMat.ColLabels(), *maxDiffs)

	// 4. Compare cells
	fmt.Println("\n4. Cells")
	fmt.Println("--------")
	if err := compareCells(leftMat, rightMat, *tolerance, *maxDiffs,
		result); err != nil {
		log.Fatalf("Failed to compare cells: %v", err)
	}

	// 5. Summary
	fmt.Println("\n5. Summary")
	fmt.Println("----------")
	printSummary(result)
}

func compareShape(
	left *community.Matrix,
	right *community.Matrix,
	result *ComparisonResult,
) {
	result.LeftRows, result.LeftCols = left.Rows(), left.Cols()
	result.RightRows, result.RightCols = right.Rows(), right.Cols()
	result.ShapeMatch = result.LeftRows == result.RightRows &&
		result.LeftCols == result.RightCols

	fmt.Printf("  left:  %d x %d\n", result.LeftRows, result.LeftCols)
	fmt.Printf("  right: %d x %d\n", result.RightRows, result.RightCols)
	if result.ShapeMatch {
		fmt.Printf("  ✓ Match\n")
	} else {
		fmt.Printf("  ✗ Mismatch\n")
	}
}

// compareLabels reports labels present on one side only and whether
// shared labels keep the same order. Returns the shared labels in left
// order.
func compareLabels(left, right []string, maxDiffs int) ([]string, bool) {
	leftSet := make(map[string]bool, len(left))
	for _, l := range left {
		leftSet[l] = true
	}
	rightSet := make(map[string]bool, len(right))
	for _, l := range right {
		rightSet[l] = true
	}

	var onlyLeft, onlyRight, shared []string
	for _, l := range left {
		if rightSet[l] {
			shared = append(shared, l)
		} else {
			onlyLeft = append(onlyLeft, l)
		}
	}
	for _, l := range right {
		if !leftSet[l] {
			onlyRight = append(onlyRight, l)
		}
	}

	fmt.Printf("  left: %d, right: %d, shared: %d\n",
		len(left), len(right), len(shared))
	printLabelList("only in left", onlyLeft, maxDiffs)
	printLabelList("only in right", onlyRight, maxDiffs)

	match := len(onlyLeft) == 0 && len(onlyRight) == 0
	switch {
	case !match:
		fmt.Printf("  ✗ Label sets differ\n")
	case !sameOrder(left, right):
		fmt.Printf("  ✗ Same labels, different order\n")
		match = false
	default:
		fmt.Printf("  ✓ Match\n")
	}
	return shared, match
}

func printLabelList(what string, labels []string, maxDiffs int) {
	if len(labels) == 0 {
		return
	}
	fmt.Printf("  %s (%d):\n", what, len(labels))
	for i, l := range labels {
		if i == maxDiffs {
			fmt.Printf("    ... %d more\n", len(labels)-maxDiffs)
			break
		}
		fmt.Printf("    %s\n", l)
	}
}

func sameOrder(left, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// compareCells walks the shared label intersection. Columns that are a
// factor on one side and numeric on the other cannot be compared and
// count as mismatches.
func compareCells(
	left *community.Matrix,
	right *community.Matrix,
	tolerance float64,
	maxDiffs int,
	result *ComparisonResult,
) error {
	if len(result.SharedRows) == 0 || len(result.SharedCols) == 0 {
		fmt.Println("  No shared cells to compare")
		result.CellsMatch = false
		return nil
	}

	var factorCols, numericCols []string
	for _, col := range result.SharedCols {
		lf, rf := left.IsFactor(col), right.IsFactor(col)
		switch {
		case lf != rf:
			result.TypeMismatches++
			fmt.Printf("  ✗ Column %s is a factor on one side only\n", col)
		case lf:
			factorCols = append(factorCols, col)
		default:
			numericCols = append(numericCols, col)
		}
	}

	for _, row := range result.SharedRows {
		for _, col := range factorCols {
			lv, err := left.Level(row, col)
			if err != nil {
				return fmt.Errorf("left level %s/%s: %w", row, col, err)
			}
			rv, err := right.Level(row, col)
			if err != nil {
				return fmt.Errorf("right level %s/%s: %w", row, col, err)
			}
			if lv != rv {
				result.CellMismatches++
				if result.CellMismatches <= maxDiffs {
					fmt.Printf("  %s / %s: left=%s right=%s\n",
						row, col, lv, rv)
				}
			}
		}

		for _, col := range numericCols {
			lv, err := left.Value(row, col)
			if err != nil {
				return fmt.Errorf("left cell %s/%s: %w", row, col, err)
			}
			rv, err := right.Value(row, col)
			if err != nil {
				return fmt.Errorf("right cell %s/%s: %w", row, col, err)
			}
			diff := math.Abs(lv - rv)
			if diff > result.MaxAbsDiff {
				result.MaxAbsDiff = diff
			}
			if diff > tolerance {
				result.CellMismatches++
				if result.CellMismatches <= maxDiffs {
					fmt.Printf("  %s / %s: left=%g right=%g (diff: %g)\n",
						row, col, lv, rv, diff)
				}
			}
		}
	}

	result.CellsMatch = result.CellMismatches == 0 &&
		result.TypeMismatches == 0

	compared := len(result.SharedRows) *
		(len(factorCols) + len(numericCols))
	fmt.Printf("  Compared %d cells\n", compared)
	if result.CellsMatch {
		fmt.Printf("  ✓ All cells within tolerance (max diff: %g)\n",
			result.MaxAbsDiff)
	} else {
		fmt.Printf("  ✗ %d cell mismatches found (max diff: %g)\n",
			result.CellMismatches+result.TypeMismatches, result.MaxAbsDiff)
	}

	return nil
}

func printSummary(result *ComparisonResult) {
	allMatch := result.ShapeMatch &&
		result.RowLabelsMatch &&
		result.ColLabelsMatch &&
		result.CellsMatch

	if allMatch {
		fmt.Println("  ✓ All comparisons match!")
		fmt.Println("  The matrices are identical within tolerance.")
		return
	}

	fmt.Println("  ✗ Differences found:")
	if !result.ShapeMatch {
		fmt.Printf("    - Shape differs\n")
	}
	if !result.RowLabelsMatch {
		fmt.Printf("    - Row labels differ\n")
	}
	if !result.ColLabelsMatch {
		fmt.Printf("    - Column labels differ\n")
	}
	if !result.CellsMatch {
		fmt.Printf("    - %d cells differ\n",
			result.CellMismatches+result.TypeMismatches)
	}
}
