package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/kv"
)

// maxUploadBytes bounds a single uploaded blob (logos, page scans,
// license renewals).
const maxUploadBytes = 10 << 20

// uploadEnvelope is the stored form of a blob: the raw bytes plus enough
// metadata to serve them back.
type uploadEnvelope struct {
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName,omitempty"`
	Data        []byte `json:"data"`
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// sanitizeName flattens a file name into a key-safe slug.
func sanitizeName(name string) string {
	slug := nonKeyChars.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "file"
	}
	return slug
}

// uploadKey builds the storage key for a blob. The third segment is the
// owning process id when known, otherwise the upload's epoch seconds, so
// unrelated uploads of the same file never collide.
func (s *Server) uploadKey(kind, fileName, processID string) string {
	scope := processID
	if scope == "" {
		scope = fmt.Sprintf("%d", s.now().Unix())
	}
	return fmt.Sprintf("%s-%s-%s-%d", kind, sanitizeName(fileName), scope, s.now().UnixMilli())
}

// handleUpload accepts a multipart upload and stores it in the KV store.
// Form fields: "file" (the blob), "kind" (logo, form-page, license, ...),
// optional "processId".
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		s.errorResponse(w, http.StatusBadRequest, "Field 'kind' is required")
		return
	}
	kind = sanitizeName(kind)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	if len(data) > maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
		return
	}

	// Multipart parts default to application/octet-stream; sniff the real
	// type so the blob serves back correctly.
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	envelope, err := json.Marshal(uploadEnvelope{
		ContentType: contentType,
		FileName:    header.Filename,
		Data:        data,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := s.uploadKey(kind, header.Filename, r.FormValue("processId"))
	if err := s.store.Set(r.Context(), key, envelope); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"key": key})
}

// handleGetUpload serves a stored blob back with its original content type.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Upload not found")
			return
		}
		s.writeError(w, err)
		return
	}

	var envelope uploadEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", envelope.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(envelope.Data); err != nil {
		s.logger.Error("writing upload response failed", zap.Error(err))
	}
}
