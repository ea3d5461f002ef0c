package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// BackupResult summarizes one backup run.
type BackupResult struct {
	Uploaded int
	Skipped  int
}

// BackupToBucket mirrors the current catalog's image files and the index
// file into the configured Cloud Storage bucket, keyed by their site-relative
// paths. Objects already present with the same size are skipped.
func BackupToBucket(ctx context.Context) (*BackupResult, error) {
	return defaultService.BackupToBucket(ctx)
}

// BackupToBucket mirrors the asset tree into the backup bucket.
func (s *Service) BackupToBucket(ctx context.Context) (*BackupResult, error) {
	if err := s.config.RequireBucket(); err != nil {
		return nil, err
	}

	cat, err := s.CurrentCatalog()
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}
	defer client.Close()

	bucket := client.Bucket(s.config.BucketName)

	// Collect what the bucket already has so unchanged files are skipped.
	existing := make(map[string]int64)
	it := bucket.Objects(ctx, nil)
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %v", err)
		}
		existing[obj.Name] = obj.Size
	}

	result := &BackupResult{}
	for _, key := range cat.Keys() {
		entry, _ := cat.Get(key)
		for _, rel := range entry.Images {
			if err := s.backupFile(ctx, bucket, existing, rel, result); err != nil {
				log.Printf("Skipping backup of %s: %v", rel, err)
			}
		}
	}

	// The index file rides along under its own site-relative path.
	indexRel, err := filepath.Rel(s.config.SiteRoot, s.config.CatalogPath)
	if err == nil {
		if err := s.backupFile(ctx, bucket, nil, filepath.ToSlash(indexRel), result); err != nil {
			log.Printf("Skipping backup of index: %v", err)
		}
	}

	return result, nil
}

// backupFile uploads one site-relative path unless the bucket already holds
// an object of the same name and size. existing may be nil to force upload.
func (s *Service) backupFile(ctx context.Context, bucket *storage.BucketHandle, existing map[string]int64, rel string, result *BackupResult) error {
	abs := filepath.Join(s.config.SiteRoot, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if size, ok := existing[rel]; ok && size == info.Size() {
		result.Skipped++
		return nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %v", err)
	}

	writer := bucket.Object(rel).NewWriter(ctx)
	if ct := mime.TypeByExtension(filepath.Ext(rel)); ct != "" {
		writer.ContentType = ct
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("Writer.Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}

	result.Uploaded++
	return nil
}
