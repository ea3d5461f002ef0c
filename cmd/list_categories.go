package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"velora-gallery/pkg/services"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all product categories",
		Long:  `List all product categories with the number of images in each.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			listCategories()
		},
	}
}

// listCategories displays all categories and their image counts
func listCategories() {
	cat, err := services.CurrentCatalog()
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	fmt.Println("Product Categories:")
	fmt.Println("==================")

	for _, key := range cat.Keys() {
		entry, _ := cat.Get(key)
		fmt.Printf("%s (%s)\n", entry.Name, key)
		fmt.Printf("  Images: %d\n", len(entry.Images))
		fmt.Println()
	}

	fmt.Printf("Total: %d categories\n", cat.Len())
}
