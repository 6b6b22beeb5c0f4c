// Package main provides the vegmat CLI application.
// vegmat builds site-by-species matrices from long-format vegetation
// surveys and prepares them for ordination.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
