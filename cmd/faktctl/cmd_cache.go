// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faktgo/faktgo/cachefile"
	"github.com/faktgo/faktgo/metadata"
)

var cacheInspectFile string

func init() {
	cacheInspectCmd.Flags().StringVar(&cacheInspectFile, "file", "", "cache file to inspect (defaults to --cache-input)")
}

func runCacheInspect(cmd *cobra.Command, args []string) error {
	path := cacheInspectFile
	if path == "" {
		path = cacheInputPath
	}
	if path == "" {
		return fmt.Errorf("faktctl cache inspect: no cache file given (use --file or --cache-input)")
	}

	store := metadata.NewStore()
	mgr := &cachefile.Manager{InputPath: path}
	accepted, err := mgr.TryLoad(store)
	if err != nil {
		return fmt.Errorf("faktctl cache inspect: %w", err)
	}
	if !accepted {
		fmt.Printf("cache %q was rejected (missing, malformed, or stale)\n", path)
		return nil
	}

	fmt.Printf("cache %q accepted\n", path)
	fmt.Printf("  declarations: %d\n", store.Len())
	fmt.Printf("  interface cache hits: %d\n", store.InterfaceCacheHits())
	fmt.Printf("  class cache hits: %d\n", store.ClassCacheHits())
	fmt.Printf("  saved front-end time: %dns\n", mgr.SavedFirTimeNanos())
	return nil
}
