// Dreamburst - colour palettes and photographic looks from reference images
//
// Dreamburst infers a role-tagged palette, white balance, exposure and
// lighting recipes from a single image, and expands ideas into creative briefs.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/dreamburst/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
