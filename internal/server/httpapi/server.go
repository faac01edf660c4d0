// Package httpapi exposes the public HTTP/JSON surface of the server:
// registration, login, media upload, catalog listing and deletion.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	"github.com/dmitrijs2005/mediakeeper/internal/logging"
	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
)

const shutdownTimeout = 5 * time.Second

// UsersService is the slice of the user service the HTTP layer needs.
type UsersService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, string, error)
}

// CatalogService covers catalog reads and writes.
type CatalogService interface {
	Create(ctx context.Context, kind, title, description, url string) (*models.MediaEntry, error)
	List(ctx context.Context, kind string) ([]*models.MediaEntry, error)
	DeleteByID(ctx context.Context, kind, id string) error
}

// Publisher stores a byte stream and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, body io.Reader, name, contentType string) (string, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UsersService
	catalog   CatalogService
	publisher Publisher
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UsersService, cs CatalogService, p Publisher, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		catalog:   cs,
		publisher: p,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the chi route tree. Read routes are public; upload and
// delete routes sit behind the token gate and the admin role check.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	// The browser frontend is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", common.AuthHeaderName},
	}))

	r.Get("/api/ping", s.handlePing)
	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)

	r.Get("/api/videos", s.handleList(videoRoute))
	r.Get("/api/pdfs", s.handleList(pdfRoute))

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.requireRole(common.RoleAdmin))

		r.Post("/api/upload", s.handleUpload(videoRoute))
		r.Post("/api/upload-pdf", s.handleUpload(pdfRoute))
		r.Delete("/api/videos/{id}", s.handleDelete(videoRoute))
		r.Delete("/api/pdfs/{id}", s.handleDelete(pdfRoute))
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
