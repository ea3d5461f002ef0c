package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"velora-gallery/pkg/auth"
	"velora-gallery/pkg/models"
	"velora-gallery/pkg/services"
)

// AdminPageHandler renders the admin panel. Auth is enforced by the
// middleware wrapping the admin tree.
func (h *Handler) AdminPageHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Generating Admin Page")

	cat, err := h.svc.CurrentCatalog()
	if err != nil {
		log.Printf("Catalog scan failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "./views/admin.pug", models.Admin{
		Categories: categoryViews(cat),
		Username:   auth.UserFromContext(r.Context()),
	})
}

// AddImagesHandler stores a batch of uploaded images into an existing
// category, appends the new paths to the index, and returns them.
func (h *Handler) AddImagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("category")
	if key == "" {
		h.writeError(w, "category is required", http.StatusBadRequest)
		return
	}

	cat, err := h.svc.CurrentCatalog()
	if err != nil {
		log.Printf("Catalog scan failed: %v", err)
		h.writeError(w, "failed to read product catalog", http.StatusInternalServerError)
		return
	}
	entry, ok := cat.Get(key)
	if !ok {
		h.writeError(w, "unknown category", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "no files uploaded", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		h.writeError(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	paths, err := h.svc.AddImages(entry, files)
	if err != nil {
		if !errors.Is(err, services.ErrNoFilesStored) {
			log.Printf("Image upload failed: %v", err)
		}
		h.writeError(w, "failed to upload images", http.StatusInternalServerError)
		return
	}

	if err := h.svc.UpdateCatalog(func(c *models.Catalog) {
		if e, ok := c.Get(key); ok {
			e.Images = append(e.Images, paths...)
		} else {
			c.Set(key, &models.Category{Name: entry.Name, Images: paths})
		}
	}); err != nil {
		log.Printf("Index update failed after upload: %v", err)
	}

	h.writeJSON(w, map[string]any{"paths": paths})
}

// ReplaceImageHandler swaps one image: the previous file is removed
// best-effort, the upload is stored like an add, and the index entry that
// held the previous path is overwritten in place.
func (h *Handler) ReplaceImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("category")
	if key == "" {
		h.writeError(w, "category is required", http.StatusBadRequest)
		return
	}

	cat, err := h.svc.CurrentCatalog()
	if err != nil {
		log.Printf("Catalog scan failed: %v", err)
		h.writeError(w, "failed to read product catalog", http.StatusInternalServerError)
		return
	}
	entry, ok := cat.Get(key)
	if !ok {
		h.writeError(w, "unknown category", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		h.writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	prevPath := r.FormValue("prevPath")

	path, err := h.svc.ReplaceImage(entry, files[0], prevPath)
	if err != nil {
		log.Printf("Image replace failed: %v", err)
		h.writeError(w, "failed to replace image", http.StatusInternalServerError)
		return
	}

	if err := h.svc.UpdateCatalog(func(c *models.Catalog) {
		e, ok := c.Get(key)
		if !ok {
			c.Set(key, &models.Category{Name: entry.Name, Images: []string{path}})
			return
		}
		for i, img := range e.Images {
			if img == prevPath {
				e.Images[i] = path
				return
			}
		}
		e.Images = append(e.Images, path)
	}); err != nil {
		log.Printf("Index update failed after replace: %v", err)
	}

	h.writeJSON(w, map[string]any{"path": path})
}

// DeleteImagesHandler removes a batch of site-relative paths. Entries that
// fail validation are skipped silently; the response is success regardless of
// how many paths actually existed.
func (h *Handler) DeleteImagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Paths []string `json:"paths"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "request body must contain paths", http.StatusBadRequest)
		return
	}

	h.svc.DeleteImages(req.Paths)

	deleted := make(map[string]bool, len(req.Paths))
	for _, p := range req.Paths {
		deleted[p] = true
	}
	if err := h.svc.UpdateCatalog(func(c *models.Catalog) {
		for _, catKey := range c.Keys() {
			e, _ := c.Get(catKey)
			kept := e.Images[:0]
			for _, img := range e.Images {
				if !deleted[img] {
					kept = append(kept, img)
				}
			}
			e.Images = kept
		}
	}); err != nil {
		log.Printf("Index update failed after delete: %v", err)
	}

	h.writeJSON(w, map[string]any{"success": true})
}

// LoginHandler checks the shared admin credentials and issues a session
// cookie.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	// A missing or malformed body is just a failed login attempt.
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if !h.auth.ValidCredentials(creds.Username, creds.Password) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid_credentials"})
		return
	}

	token, err := h.auth.Sessions.Create(creds.Username)
	if err != nil {
		h.writeError(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	h.auth.SetSessionCookie(w, r, token)
	h.writeJSON(w, map[string]any{"success": true, "username": creds.Username})
}

// LogoutHandler invalidates the session and clears the cookie.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, token, ok := h.auth.SessionFromRequest(r); ok {
		h.auth.Sessions.Invalidate(token)
	}
	h.auth.ClearSessionCookie(w, r)
	h.writeJSON(w, map[string]any{"success": true})
}

// SessionHandler reports whether the caller holds a live session.
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.auth.SessionFromRequest(r)
	if !ok {
		h.writeJSON(w, map[string]any{"authenticated": false})
		return
	}
	h.writeJSON(w, map[string]any{"authenticated": true, "username": session.Username})
}
