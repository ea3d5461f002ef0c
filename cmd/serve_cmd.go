package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"velora-gallery/pkg/auth"
	"velora-gallery/pkg/config"
	"velora-gallery/pkg/handlers"
	"velora-gallery/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the gallery, the catalog API, and the admin panel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			if err := cfg.RequireAdminCredentials(); err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			return serveWebsite(cmd.Context(), cfg)
		},
	}
}

// NewMux builds the route table shared by both entry points.
func NewMux(cfg *config.Config) *http.ServeMux {
	svc := services.NewService(cfg)
	authn := auth.New(cfg)
	h := handlers.New(cfg, svc, authn)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.HealthzHandler)
	mux.HandleFunc("/robots.txt", h.RobotsHandler)
	mux.HandleFunc("/sitemap.xml", h.SitemapHandler)

	mux.HandleFunc("/gallery", h.GalleryPageHandler)
	mux.HandleFunc("/gallery/", h.GalleryPageHandler)

	// GET is public; POST checks the session itself.
	mux.HandleFunc("/api/products", h.ProductsHandler)
	mux.Handle("/api/images/add", authn.RequireAuth(http.HandlerFunc(h.AddImagesHandler)))
	mux.Handle("/api/images/replace", authn.RequireAuth(http.HandlerFunc(h.ReplaceImageHandler)))
	mux.Handle("/api/images/delete", authn.RequireAuth(http.HandlerFunc(h.DeleteImagesHandler)))

	mux.HandleFunc("/admin/api/session", h.SessionHandler)
	mux.HandleFunc("/admin/api/login", h.LoginHandler)
	mux.HandleFunc("/admin/api/logout", h.LogoutHandler)
	mux.Handle("/admin/panel", authn.RequireAuth(http.HandlerFunc(h.AdminPageHandler)))

	fileServer := http.FileServer(http.Dir(cfg.SiteRoot))
	mux.Handle("/admin/", authn.ProtectAdminTree(fileServer))
	mux.Handle("/", fileServer)

	return mux
}

// serveWebsite runs the web server until the context is cancelled.
func serveWebsite(ctx context.Context, cfg *config.Config) error {
	server := &http.Server{
		Addr:    cfg.ServerAddress(),
		Handler: NewMux(cfg),
	}

	serverErr := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
			return err
		}
		log.Println("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
