package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/placement/internal/domain/query"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond writes v as 200 or the mapped error.
func respond[T any](w http.ResponseWriter, v T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// decode reads a JSON body into v. Unknown fields are rejected.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}
	return nil
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// page reads page and page_size, capping the size at the server maximum.
func (s *Server) page(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: page must be an integer", ErrBadRequest)
	}
	size, err := intParam(q.Get("page_size"), s.maxPageSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: page_size must be an integer", ErrBadRequest)
	}
	if size <= 0 || size > s.maxPageSize {
		size = s.maxPageSize
	}
	return page, size, nil
}

func intParam(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// listPage validates the paging parameters, runs fetch and writes one page
// of its result.
func listPage[T any](s *Server, w http.ResponseWriter, r *http.Request, fetch func() ([]T, error)) {
	page, size, err := s.page(r)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := fetch()
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, query.Paginate(items, page, size))
}
