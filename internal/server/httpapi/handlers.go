package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
)

// routeSpec parameterizes the handlers shared by the two media kinds.
type routeSpec struct {
	kind       string
	fileField  string // multipart field carrying the file
	payloadKey string // response key holding the created entry
	label      string // human-readable, used in messages
}

var (
	videoRoute = routeSpec{kind: models.KindVideo, fileField: "video", payloadKey: "video", label: "Video"}
	pdfRoute   = routeSpec{kind: models.KindPDF, fileField: "pdf", payloadKey: "pdf", label: "PDF"}
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	role, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		s.logger.Error(ctx, "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "role", role)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User registered successfully",
		"role":    role,
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, role, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusBadRequest, "User not found")
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusBadRequest, "Invalid password")
		default:
			s.logger.Error(ctx, "login failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Error logging in")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"role":  role,
	})
}

// handleUpload drives the publish-then-record sequence: the object is fully
// stored and public before its catalog entry exists. A failure at any step
// surfaces as a single error; the caller must assume no catalog record was
// created.
func (s *HTTPServer) handleUpload(spec routeSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		file, header, err := r.FormFile(spec.fileField)
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded.")
			return
		}
		defer file.Close()

		title := r.FormValue("title")
		description := r.FormValue("description")

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		url, err := s.publisher.Publish(ctx, file, header.Filename, contentType)
		if err != nil {
			s.logger.Error(ctx, "upload failed", "kind", spec.kind, "name", header.Filename, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Error uploading file.")
			return
		}

		entry, err := s.catalog.Create(ctx, spec.kind, title, description, url)
		if err != nil {
			s.logger.Error(ctx, "catalog write failed", "kind", spec.kind, "url", url, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Error saving metadata.")
			return
		}

		s.logger.Info(ctx, "Published", "kind", spec.kind, "id", entry.ID, "url", url)
		writeJSON(w, http.StatusOK, map[string]any{
			"message":       spec.label + " uploaded and metadata saved!",
			spec.payloadKey: entry,
		})
	}
}

func (s *HTTPServer) handleList(spec routeSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entries, err := s.catalog.List(ctx, spec.kind)
		if err != nil {
			s.logger.Error(ctx, "listing failed", "kind", spec.kind, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Error fetching "+spec.payloadKey+"s.")
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}

func (s *HTTPServer) handleDelete(spec routeSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		if err := s.catalog.DeleteByID(ctx, spec.kind, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeError(w, http.StatusNotFound, spec.label+" not found")
				return
			}
			s.logger.Error(ctx, "delete failed", "kind", spec.kind, "id", id, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Error deleting "+spec.payloadKey)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": spec.label + " deleted successfully"})
	}
}
