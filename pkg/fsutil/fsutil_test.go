package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanRelPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"/", ""},
		{"a/b", "a/b"},
		{"/a/b", "a/b"},
		{"a//b", "a/b"},
		{"a/../b", "b"},
		{"../a", "a"},
		{`a\b`, "a/b"},
		{"  a/b  ", "a/b"},
	}

	for _, tt := range tests {
		if got := CleanRelPath(tt.in); got != tt.want {
			t.Errorf("CleanRelPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func newRoots(t *testing.T) (siteRoot, assetRoot string) {
	t.Helper()
	siteRoot = t.TempDir()
	assetRoot = filepath.Join(siteRoot, "velora_product")
	if err := os.MkdirAll(filepath.Join(assetRoot, "Rings"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetRoot, "Rings", "a.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(siteRoot, "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	return siteRoot, assetRoot
}

func TestSafeResolveInsideRoot(t *testing.T) {
	siteRoot, assetRoot := newRoots(t)

	abs, err := SafeResolve(siteRoot, assetRoot, "velora_product/Rings/a.jpg")
	if err != nil {
		t.Fatalf("SafeResolve: %v", err)
	}
	if filepath.Base(abs) != "a.jpg" {
		t.Errorf("unexpected resolved path %q", abs)
	}
}

func TestSafeResolveRefusals(t *testing.T) {
	siteRoot, assetRoot := newRoots(t)

	tests := []struct {
		name string
		rel  string
	}{
		{"traversal out of site", "../../etc/passwd"},
		{"absolute-style traversal", "/../../etc/passwd"},
		{"inside site but outside assets", "secret.txt"},
		{"nonexistent file", "velora_product/Rings/missing.jpg"},
		{"empty", ""},
		{"asset root parent", "velora_product/.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SafeResolve(siteRoot, assetRoot, tt.rel); !errors.Is(err, ErrUnsafePath) {
				t.Errorf("SafeResolve(%q) err = %v, want ErrUnsafePath", tt.rel, err)
			}
		})
	}
}

func TestSafeResolveSymlinkEscape(t *testing.T) {
	siteRoot, assetRoot := newRoots(t)

	outside := filepath.Join(t.TempDir(), "outside.jpg")
	if err := os.WriteFile(outside, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(assetRoot, "Rings", "link.jpg")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := SafeResolve(siteRoot, assetRoot, "velora_product/Rings/link.jpg"); !errors.Is(err, ErrUnsafePath) {
		t.Errorf("symlink escape not refused: %v", err)
	}
}
