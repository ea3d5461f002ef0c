package services

import (
	"sync"

	"velora-gallery/pkg/catalog"
	"velora-gallery/pkg/config"
	"velora-gallery/pkg/models"
)

// Service handles catalog reads, catalog writes, and image mutations.
//
// The mutex serializes every read-modify-write of the index file inside this
// process, which closes the in-process race between concurrent admin
// requests. Writers in other processes still race; last writer wins.
type Service struct {
	config  *config.Config
	store   *catalog.Store
	scanner *catalog.Scanner
	mu      sync.Mutex
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService creates a service for the given configuration.
func NewService(cfg *config.Config) *Service {
	store := catalog.NewStore(cfg.CatalogPath)
	return &Service{
		config: cfg,
		store:  store,
		scanner: &catalog.Scanner{
			SiteRoot:  cfg.SiteRoot,
			AssetRoot: cfg.AssetRoot,
			KeepEmpty: cfg.KeepEmptyCategories,
			Store:     store,
		},
	}
}

// InitService initializes the singleton service with the given configuration.
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg)
	})
}

// CurrentCatalog returns the catalog after a fresh scan (or the persisted
// fallback when the scan comes up empty).
func CurrentCatalog() (*models.Catalog, error) {
	return defaultService.CurrentCatalog()
}

// CurrentCatalog scans the asset tree so the index stays authoritative over
// the filesystem on every read.
func (s *Service) CurrentCatalog() (*models.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanner.Scan()
}

// SaveCatalog applies the empty-category policy and overwrites the index.
func (s *Service) SaveCatalog(cat *models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEmptyPolicy(cat)
	return s.store.Write(cat)
}

// UpdateCatalog runs fn against the latest persisted catalog and writes the
// result back, all under the service lock. This is the single point where the
// handlers apply their in-memory delta after filesystem effects.
func (s *Service) UpdateCatalog(fn func(cat *models.Catalog)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := s.store.Read()
	fn(cat)
	s.applyEmptyPolicy(cat)
	return s.store.Write(cat)
}

// applyEmptyPolicy drops zero-image categories unless configured to keep
// them. The same policy governs scans and manual edits, so the read and
// write paths never disagree.
func (s *Service) applyEmptyPolicy(cat *models.Catalog) {
	if s.config.KeepEmptyCategories {
		return
	}
	for _, key := range cat.Keys() {
		if entry, ok := cat.Get(key); ok && len(entry.Images) == 0 {
			cat.Delete(key)
		}
	}
}
