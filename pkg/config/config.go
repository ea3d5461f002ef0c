package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration for the application. SiteRoot, AssetRoot and
// CatalogPath are absolute once Load returns.
type Config struct {
	SiteRoot    string
	AssetRoot   string
	CatalogPath string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	Port       string
	BucketName string

	KeepEmptyCategories bool
	SessionTTL          time.Duration
}

// ErrSiteRootNotFound is returned when the SITE_ROOT directory does not exist.
var ErrSiteRootNotFound = errors.New("SITE_ROOT directory does not exist")

// ErrAdminCredentialsNotSet is returned when ADMIN_USERNAME or ADMIN_PASSWORD
// is missing but the command needs them.
var ErrAdminCredentialsNotSet = errors.New("ADMIN_USERNAME and ADMIN_PASSWORD environment variables not set")

// ErrBucketNameNotSet is returned when BUCKET_NAME is missing but the command
// needs it.
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	siteRoot := os.Getenv("SITE_ROOT")
	if siteRoot == "" {
		siteRoot = "."
	}
	siteRoot, err := filepath.Abs(siteRoot)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(siteRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSiteRootNotFound, siteRoot)
	}

	assetRoot := os.Getenv("ASSET_DIR")
	if assetRoot == "" {
		assetRoot = filepath.Join(siteRoot, "velora_product")
	} else if !filepath.IsAbs(assetRoot) {
		assetRoot = filepath.Join(siteRoot, assetRoot)
	}

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = filepath.Join(siteRoot, "admin", "data", "products.json")
	} else if !filepath.IsAbs(catalogPath) {
		catalogPath = filepath.Join(siteRoot, catalogPath)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sessionTTL := 12 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %v", err)
		}
		sessionTTL = ttl
	}

	return &Config{
		SiteRoot:            siteRoot,
		AssetRoot:           assetRoot,
		CatalogPath:         catalogPath,
		AdminUsername:       os.Getenv("ADMIN_USERNAME"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		Port:                port,
		BucketName:          os.Getenv("BUCKET_NAME"),
		KeepEmptyCategories: os.Getenv("KEEP_EMPTY_CATEGORIES") == "true",
		SessionTTL:          sessionTTL,
	}, nil
}

// RequireAdminCredentials verifies the admin credential pair is configured.
// Serving requires it; the read-only CLI commands do not.
func (c *Config) RequireAdminCredentials() error {
	if c.AdminUsername == "" || (c.AdminPassword == "" && c.AdminPasswordHash == "") {
		return ErrAdminCredentialsNotSet
	}
	return nil
}

// RequireBucket verifies a backup bucket is configured.
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}

// ServerAddress returns the server address with port.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts.
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Catalog URL: http://localhost:%s/api/products\n", c.Port)
	fmt.Printf("Admin URL: http://localhost:%s/admin/\n", c.Port)
}
