package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"velora-gallery/pkg/services"
)

// newScanCmd creates a new command for rebuilding the catalog from disk
func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Rescan the asset tree and rewrite the catalog index",
		Long: `Walk the asset directory, rebuild the catalog from the category folders
found there, and persist it to the JSON index.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			runScan()
		},
	}
}

// runScan performs one scan and prints a summary
func runScan() {
	cat, err := services.CurrentCatalog()
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	images := 0
	for _, key := range cat.Keys() {
		entry, _ := cat.Get(key)
		images += len(entry.Images)
	}
	fmt.Printf("Scanned %d categories, %d images\n", cat.Len(), images)
}
