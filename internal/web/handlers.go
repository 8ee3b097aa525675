package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// indexData feeds the search form template
type indexData struct {
	Error        string
	DefaultLimit int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, errMsg string) {
	data := indexData{
		Error:        errMsg,
		DefaultLimit: s.cfg.Server.DefaultLimit,
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.WithError(err).Error("failed to render index template")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.FormValue("handle"))
	limit := s.clampLimit(parseIntOr(r.FormValue("limit"), 0))

	if handle == "" {
		s.renderIndex(w, "Please enter a Bluesky handle")
		return
	}

	result, err := s.buildUserReport(handle, limit)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"handle": handle,
			"error":  err.Error(),
		}).Warn("report request failed")
		s.renderIndex(w, "Error: "+err.Error())
		return
	}

	if err := s.tmpl.ExecuteTemplate(w, "report.html", result); err != nil {
		s.logger.WithError(err).Error("failed to render report template")
	}
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	limit := s.clampLimit(parseIntOr(r.URL.Query().Get("limit"), 0))

	w.Header().Set("Content-Type", "application/json")

	result, err := s.buildUserReport(handle, limit)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.WithError(err).Error("failed to encode API response")
	}
}

// parseIntOr parses s as an integer, falling back to def on failure
func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
