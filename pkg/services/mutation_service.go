package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"velora-gallery/pkg/fsutil"
	"velora-gallery/pkg/models"
)

// ErrUnknownCategory is returned when the requested category key is not in
// the current catalog.
var ErrUnknownCategory = errors.New("unknown category")

// ErrNoFilesStored is returned when an upload batch stores zero files.
var ErrNoFilesStored = errors.New("no files stored")

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename keeps [A-Za-z0-9._-] and replaces everything else with
// underscores, matching the stored-name convention of existing assets.
func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}

// AddImages stores the uploaded files into the category's directory and
// returns their new site-relative paths. Files that fail to open or copy are
// skipped individually; the batch only fails when nothing was stored. The
// index is not touched here: the caller appends the returned paths to the
// in-memory catalog and persists in one place.
func (s *Service) AddImages(category *models.Category, files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(s.config.AssetRoot, category.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	stamp := time.Now().UnixMilli()
	var paths []string
	for i, fh := range files {
		name := fmt.Sprintf("%d-%d-%s", stamp, i, sanitizeFilename(fh.Filename))
		dst := filepath.Join(dir, name)
		if err := saveUpload(fh, dst); err != nil {
			log.Printf("Skipping upload %s: %v", fh.Filename, err)
			continue
		}
		rel, err := filepath.Rel(s.config.SiteRoot, dst)
		if err != nil {
			log.Printf("Skipping upload %s: %v", fh.Filename, err)
			os.Remove(dst)
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}

	if len(paths) == 0 {
		return nil, ErrNoFilesStored
	}
	return paths, nil
}

// ReplaceImage stores one uploaded file into the category's directory,
// deleting the previous file first when a previous path is supplied. The
// previous-file delete is best-effort: a missing or invalid path never blocks
// the replace. Returns the new site-relative path.
func (s *Service) ReplaceImage(category *models.Category, file *multipart.FileHeader, prevPath string) (string, error) {
	if prevPath != "" {
		s.safeUnlink(prevPath)
	}

	paths, err := s.AddImages(category, []*multipart.FileHeader{file})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// DeleteImages removes the given site-relative paths from disk. Each path is
// validated through the safety gate and must be a regular file; anything that
// fails validation is silently skipped. The index is the caller's to update.
func (s *Service) DeleteImages(paths []string) {
	for _, p := range paths {
		s.safeUnlink(p)
	}
}

// safeUnlink deletes a site-relative path only when it resolves to a regular
// file under the asset root. All failures are swallowed.
func (s *Service) safeUnlink(rel string) {
	abs, err := fsutil.SafeResolve(s.config.SiteRoot, s.config.AssetRoot, rel)
	if err != nil {
		log.Printf("Refusing to delete %q: %v", rel, err)
		return
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if err := os.Remove(abs); err != nil {
		log.Printf("Failed to delete %s: %v", abs, err)
	}
}

// saveUpload copies one multipart upload to dst.
func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}
