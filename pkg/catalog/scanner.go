package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"velora-gallery/pkg/models"
)

// imageExtensions is the allow-list of file extensions treated as images.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// IsImageFile reports whether name has an allowed image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scanner rebuilds the catalog from the asset directory tree. Each immediate
// subdirectory of the asset root becomes one category; its immediate image
// files become the category's images, as paths relative to the site root.
type Scanner struct {
	SiteRoot  string
	AssetRoot string
	KeepEmpty bool
	Store     *Store
}

// Scan walks the asset root and rebuilds the catalog wholesale.
//
// A non-empty result is persisted through the store before being returned, so
// read and write paths never diverge. An empty result (no categories survive)
// falls back to the last persisted catalog instead of wiping it. A missing
// asset root is a configuration error and fails the scan.
func (s *Scanner) Scan() (*models.Catalog, error) {
	assetRoot, err := filepath.EvalSymlinks(s.AssetRoot)
	if err != nil {
		return nil, fmt.Errorf("asset root %s: %w", s.AssetRoot, err)
	}

	// Resolve the site root the same way so Rel sees consistent paths.
	siteRoot := s.SiteRoot
	if resolved, err := filepath.EvalSymlinks(s.SiteRoot); err == nil {
		siteRoot = resolved
	}

	entries, err := os.ReadDir(assetRoot)
	if err != nil {
		return nil, fmt.Errorf("asset root %s: %w", s.AssetRoot, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Slice(dirs, func(i, j int) bool {
		return naturalLess(dirs[i], dirs[j])
	})

	cat := models.NewCatalog()
	for _, dir := range dirs {
		images, err := s.listImages(siteRoot, filepath.Join(assetRoot, dir))
		if err != nil {
			log.Printf("Skipping unreadable category directory %s: %v", dir, err)
			continue
		}
		if len(images) == 0 && !s.KeepEmpty {
			continue
		}

		key := Slugify(dir)
		if prev, ok := cat.Get(key); ok {
			log.Printf("Category directories %q and %q both slugify to %q; keeping %q", prev.Name, dir, key, dir)
		}
		cat.Set(key, &models.Category{Name: dir, Images: images})
	}

	if cat.Len() == 0 {
		return s.Store.Read(), nil
	}

	if err := s.Store.Write(cat); err != nil {
		log.Printf("Failed to persist scanned catalog: %v", err)
	}
	return cat, nil
}

// listImages lists the immediate image files of a category directory in
// natural case-insensitive order, as forward-slash site-relative paths.
func (s *Scanner) listImages(siteRoot, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})

	images := make([]string, 0, len(names))
	for _, name := range names {
		rel, err := filepath.Rel(siteRoot, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		images = append(images, filepath.ToSlash(rel))
	}
	return images, nil
}
