package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vmihailenco/msgpack/v5"
)

const contentTypeMsgpack = "application/msgpack"

// readUpload returns the name and bytes of the multipart "file" field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		if isTooLarge(err) {
			return "", nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
		}
		return "", nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			return "", nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
		}
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return header.Filename, data, nil
}

func isTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large")
}

// handleImportRoster replaces the active roster with the uploaded file.
func (s *Server) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	result, err := s.service.ImportRoster(withRequestMetadata(r.Context(), r), name, data)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handlePreviewRoster shows what an import would store.
func (s *Server) handlePreviewRoster(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	result, err := s.service.PreviewRoster(name, data)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClearRoster(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.ClearRoster(r.Context())
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// handleListEmployees returns the roster as JSON, or as MessagePack when
// the client asks for it.
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.service.ListEmployees(r.Context())
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		body, err := msgpack.Marshal(employees)
		if err != nil {
			respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeMsgpack)
		if _, err := w.Write(body); err != nil {
			slog.Error("msgpack write error", "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(employees),
		"employees": employees,
	})
}

// handleEmployeeContext returns the plain-text roster block for the model.
func (s *Server) handleEmployeeContext(w http.ResponseWriter, r *http.Request) {
	text, err := s.service.EmployeeContext(r.Context())
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	imports, err := s.service.ListImports(r.Context(), parseIntParam(r, "limit", 0))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, imports)
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	rec, err := s.service.GetImport(r.Context(), chi.URLParam(r, "importID"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// parseIntParam reads a query parameter, falling back to defaultVal when
// it is missing or not a number.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return defaultVal
	}
	return v
}
