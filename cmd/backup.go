package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"velora-gallery/pkg/services"
)

// newBackupCmd creates a new command for mirroring assets to Cloud Storage
func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Mirror the catalog and its images to a Cloud Storage bucket",
		Long: `Upload every image referenced by the current catalog, plus the JSON index
itself, into the configured Cloud Storage bucket. Objects already present
with the same size are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			if err := cfg.RequireBucket(); err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			result, err := services.BackupToBucket(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Backup complete: %d uploaded, %d skipped\n", result.Uploaded, result.Skipped)
			return nil
		},
	}
}
