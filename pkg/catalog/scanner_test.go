package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"velora-gallery/pkg/models"
)

// newTestScanner builds a site root with an asset directory and returns a
// scanner over it.
func newTestScanner(t *testing.T) (*Scanner, string) {
	t.Helper()
	siteRoot := t.TempDir()
	assetRoot := filepath.Join(siteRoot, "velora_product")
	if err := os.MkdirAll(assetRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	scanner := &Scanner{
		SiteRoot:  siteRoot,
		AssetRoot: assetRoot,
		Store:     NewStore(filepath.Join(siteRoot, "admin", "data", "products.json")),
	}
	return scanner, assetRoot
}

func addImage(t *testing.T, assetRoot, category, name string) {
	t.Helper()
	dir := filepath.Join(assetRoot, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDropsEmptyCategories(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	addImage(t, assetRoot, "A", "1.jpg")
	if err := os.MkdirAll(filepath.Join(assetRoot, "B"), 0o755); err != nil {
		t.Fatal(err)
	}

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(cat.Keys(), []string{"a"}) {
		t.Fatalf("expected only category a, got %v", cat.Keys())
	}
}

func TestScanKeepsEmptyCategoriesWhenConfigured(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	scanner.KeepEmpty = true
	addImage(t, assetRoot, "A", "1.jpg")
	if err := os.MkdirAll(filepath.Join(assetRoot, "B"), 0o755); err != nil {
		t.Fatal(err)
	}

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(cat.Keys(), []string{"a", "b"}) {
		t.Fatalf("expected categories a and b, got %v", cat.Keys())
	}
}

func TestScanEmptyFallsBackToPersistedCatalog(t *testing.T) {
	scanner, _ := newTestScanner(t)

	persisted := models.NewCatalog()
	persisted.Set("rings", &models.Category{Name: "Rings", Images: []string{"velora_product/Rings/1.jpg"}})
	if err := scanner.Store.Write(persisted); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(filepath.Join(scanner.SiteRoot, "admin", "data", "products.json"))
	if err != nil {
		t.Fatal(err)
	}

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, ok := cat.Get("rings"); !ok {
		t.Fatal("empty scan did not fall back to persisted catalog")
	}

	after, err := os.ReadFile(filepath.Join(scanner.SiteRoot, "admin", "data", "products.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("empty scan overwrote the persisted index")
	}
}

func TestScanNaturalOrder(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	addImage(t, assetRoot, "Item 10", "1.jpg")
	addImage(t, assetRoot, "Item 2", "1.jpg")
	addImage(t, assetRoot, "Item 2", "photo10.jpg")
	addImage(t, assetRoot, "Item 2", "photo2.jpg")

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(cat.Keys(), []string{"item-2", "item-10"}) {
		t.Fatalf("category order wrong: %v", cat.Keys())
	}

	entry, _ := cat.Get("item-2")
	want := []string{
		"velora_product/Item 2/1.jpg",
		"velora_product/Item 2/photo2.jpg",
		"velora_product/Item 2/photo10.jpg",
	}
	if !reflect.DeepEqual(entry.Images, want) {
		t.Fatalf("image order wrong: %v", entry.Images)
	}
}

func TestScanFiltersExtensions(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	addImage(t, assetRoot, "Mixed", "keep.PNG")
	addImage(t, assetRoot, "Mixed", "keep.webp")
	addImage(t, assetRoot, "Mixed", "skip.txt")
	addImage(t, assetRoot, "Mixed", "skip.mp4")

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	entry, ok := cat.Get("mixed")
	if !ok {
		t.Fatal("category missing")
	}
	if len(entry.Images) != 2 {
		t.Fatalf("expected 2 images after filtering, got %v", entry.Images)
	}
}

func TestScanSlugCollisionLastWins(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	addImage(t, assetRoot, "Rings", "1.jpg")
	addImage(t, assetRoot, "Rings!", "2.jpg")

	cat, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("expected 1 category after collision, got %v", cat.Keys())
	}
	entry, _ := cat.Get("rings")
	if entry.Name != "Rings!" {
		t.Fatalf("expected later directory to win, got %q", entry.Name)
	}
}

func TestScanMissingAssetRootFails(t *testing.T) {
	scanner, _ := newTestScanner(t)
	scanner.AssetRoot = filepath.Join(scanner.SiteRoot, "does_not_exist")

	if _, err := scanner.Scan(); err == nil {
		t.Fatal("expected error for missing asset root")
	}
}

func TestScanPersistsResult(t *testing.T) {
	scanner, assetRoot := newTestScanner(t)
	addImage(t, assetRoot, "Rings", "1.jpg")

	if _, err := scanner.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	persisted := scanner.Store.Read()
	if _, ok := persisted.Get("rings"); !ok {
		t.Fatal("scan result was not persisted")
	}
}
