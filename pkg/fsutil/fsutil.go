package fsutil

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for any caller-supplied path that does not
// resolve to an existing location under the asset root.
var ErrUnsafePath = errors.New("path outside asset root")

// CleanRelPath takes a user path like "", ".", "/a/b", "a//b", and returns a
// safe, slash-based, no-leading-slash relative path ("" means root).
func CleanRelPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "." || p == "/" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p) // force absolute for stable cleaning
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// SafeResolve resolves a site-relative web path and verifies that its
// canonical form (symlinks and ".." resolved) lives at or under the canonical
// asset root. Every mutating operation that accepts an outside path must go
// through this gate before touching the filesystem. Anything that fails to
// resolve, including a path that does not exist, is refused with
// ErrUnsafePath rather than a filesystem error.
func SafeResolve(siteRoot, assetRoot, rel string) (string, error) {
	rel = CleanRelPath(rel)
	if rel == "" || strings.Contains(rel, "\x00") {
		return "", ErrUnsafePath
	}

	rootCanon, err := filepath.EvalSymlinks(assetRoot)
	if err != nil {
		return "", ErrUnsafePath
	}

	abs := filepath.Join(siteRoot, filepath.FromSlash(rel))
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", ErrUnsafePath
	}

	if canon != rootCanon && !strings.HasPrefix(canon, rootCanon+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return canon, nil
}
