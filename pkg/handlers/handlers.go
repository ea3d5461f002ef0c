package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/eknkc/pug"

	"velora-gallery/pkg/auth"
	"velora-gallery/pkg/catalog"
	"velora-gallery/pkg/config"
	"velora-gallery/pkg/models"
	"velora-gallery/pkg/services"
)

// Handler serves the public gallery pages and the catalog API.
type Handler struct {
	cfg  *config.Config
	svc  *services.Service
	auth *auth.Authenticator
}

// New creates the HTTP handler set.
func New(cfg *config.Config, svc *services.Service, a *auth.Authenticator) *Handler {
	return &Handler{cfg: cfg, svc: svc, auth: a}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		log.Printf("Unable to encode JSON response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, "{\"error\":%q}\n", message)
}

// ProductsHandler serves the catalog API: a public GET that rescans the asset
// tree, and an authenticated POST that replaces the index verbatim.
func (h *Handler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cat, err := h.svc.CurrentCatalog()
		if err != nil {
			log.Printf("Catalog scan failed: %v", err)
			h.writeError(w, "failed to read product catalog", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, cat)
	case http.MethodPost:
		if _, _, ok := h.auth.SessionFromRequest(r); !ok {
			h.writeError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		cat := models.NewCatalog()
		if err := json.NewDecoder(r.Body).Decode(cat); err != nil {
			h.writeError(w, "request body must be a catalog object", http.StatusBadRequest)
			return
		}
		if err := h.svc.SaveCatalog(cat); err != nil {
			log.Printf("Catalog write failed: %v", err)
			h.writeError(w, "failed to write product catalog", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]any{"success": true})
	default:
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GalleryPageHandler renders one category's gallery page. A lookup miss
// renders the explicit empty state, never an error page.
func (h *Handler) GalleryPageHandler(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/gallery"), "/")
	if key == "" {
		h.indexPage(w)
		return
	}

	log.Println("Generating Gallery Page: " + key)

	cat, err := h.svc.CurrentCatalog()
	if err != nil {
		log.Printf("Catalog scan failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := models.GalleryPage{Key: key, Name: key}
	if entry := catalog.Resolve(cat, key); entry != nil {
		page.Name = entry.Name
		page.Images = entry.Images
	}
	if len(page.Images) == 0 {
		page.Subtitle = "No photos found for this collection yet."
	} else {
		page.Subtitle = fmt.Sprintf("%d photos in this collection.", len(page.Images))
	}

	h.render(w, "./views/gallery.pug", page)
}

// indexPage renders the category overview.
func (h *Handler) indexPage(w http.ResponseWriter) {
	log.Println("Generating Index")

	cat, err := h.svc.CurrentCatalog()
	if err != nil {
		log.Printf("Catalog scan failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "./views/index.pug", models.Index{Categories: categoryViews(cat)})
}

func (h *Handler) render(w http.ResponseWriter, view string, data interface{}) {
	template, err := pug.CompileFile(view, pug.Options{})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Template error: %v", err)
		return
	}
	if err := template.Execute(w, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Template execution error: %v", err)
	}
}

func categoryViews(cat *models.Catalog) []models.CategoryView {
	views := make([]models.CategoryView, 0, cat.Len())
	for _, key := range cat.Keys() {
		entry, _ := cat.Get(key)
		views = append(views, models.CategoryView{Key: key, Name: entry.Name, Images: entry.Images})
	}
	return views
}

// HealthzHandler answers load-balancer probes.
func (h *Handler) HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// RobotsHandler serves robots.txt, keeping crawlers out of the admin tree.
func (h *Handler) RobotsHandler(w http.ResponseWriter, r *http.Request) {
	site := baseURL(r)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\nSitemap: %s/sitemap.xml\n", site)
}

// SitemapHandler serves a minimal sitemap for the public site root.
func (h *Handler) SitemapHandler(w http.ResponseWriter, r *http.Request) {
	site := baseURL(r)
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>%s/</loc>
    <changefreq>weekly</changefreq>
    <priority>1.0</priority>
  </url>
</urlset>
`, site)
}

func baseURL(r *http.Request) string {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		if r.TLS != nil {
			proto = "https"
		} else {
			proto = "http"
		}
	}
	return fmt.Sprintf("%s://%s", proto, r.Host)
}
