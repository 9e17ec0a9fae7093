package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pbf-price-service/internal/config"
	"pbf-price-service/internal/export"
	"pbf-price-service/internal/pricelist/compare"
	"pbf-price-service/internal/pricelist/model"
	"pbf-price-service/internal/pricelist/service"
	"pbf-price-service/internal/session"
)

type Handler struct {
	svc   *service.Service
	store *session.Store
	cfg   config.Config
	log   zerolog.Logger
}

func New(svc *service.Service, store *session.Store, cfg config.Config, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, store: store, cfg: cfg, log: log}
}

type processResponse struct {
	SessionID string           `json:"session_id"`
	Result    *model.ResultSet `json:"result"`
}

type errorResponse struct {
	Error    string              `json:"error"`
	Warnings []model.FileWarning `json:"warnings,omitempty"`
}

// Process accepts a multipart batch of price lists ("files" parts, any mix
// of PDF and spreadsheet formats), runs the pipeline and stores the result
// under a fresh session id.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer r.Body.Close()

	if err := r.ParseMultipartForm(int64(h.cfg.MaxUploadMB) << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	threshold := h.cfg.SimilarityThreshold
	if raw := strings.TrimSpace(r.FormValue("threshold")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			http.Error(w, "threshold must be a number", http.StatusBadRequest)
			return
		}
		threshold = v
	}
	if threshold <= 0 || threshold > 1 {
		http.Error(w, "threshold must be in (0,1]", http.StatusBadRequest)
		return
	}
	opts := model.Options{
		Threshold:  threshold,
		DualTables: toBool(r.FormValue("dual_tables"), true),
	}

	var files []service.UploadedFile
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "read "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				http.Error(w, "read "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
				return
			}
			// per-file override first, then the batch-wide one
			pbf := strings.TrimSpace(r.FormValue("pbf_" + fh.Filename))
			if pbf == "" {
				pbf = strings.TrimSpace(r.FormValue("pbf"))
			}
			files = append(files, service.UploadedFile{
				Name: fh.Filename,
				PBF:  pbf,
				Data: data,
			})
		}
	}
	if len(files) == 0 {
		http.Error(w, "missing files", http.StatusBadRequest)
		return
	}

	if h.cfg.UploadDir != "" {
		h.stageUploads(files)
	}

	rs, err := h.svc.Process(r.Context(), files, opts)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:    "no data extracted",
				Warnings: rs.Warnings,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := h.store.Put(rs)
	h.log.Info().
		Str("session", id.String()).
		Int("files", len(files)).
		Dur("elapsed", time.Since(start)).
		Msg("process done")
	writeJSON(w, http.StatusOK, processResponse{SessionID: id.String(), Result: rs})
}

// Get returns the stored result set for a session.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

// Deals returns the session's best opportunities, ?n deals at most
// (default 10).
func (h *Handler) Deals(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.lookup(w, r)
	if !ok {
		return
	}
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, compare.TopDeals(rs.Comparisons, n))
}

// Delete drops a session before its TTL.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return
	}
	h.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV streams a session table as CSV. ?table=records|comparisons,
// default comparisons.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.lookup(w, r)
	if !ok {
		return
	}
	table := r.URL.Query().Get("table")
	if table != "" && table != "comparisons" && table != "records" {
		http.Error(w, "unknown table: "+table, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="harga-obat.csv"`)
	var err error
	if table == "records" {
		err = export.RecordsCSV(w, rs.Records)
	} else {
		err = export.ComparisonsCSV(w, rs.Comparisons)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("write csv")
	}
}

// ExportXLSX streams a session's workbook.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.lookup(w, r)
	if !ok {
		return
	}
	b, err := export.XLSX(rs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="harga-obat.xlsx"`)
	_, _ = w.Write(b)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*model.ResultSet, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return nil, false
	}
	rs, ok := h.store.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return rs, true
}

// stageUploads copies raw uploads into the reference folder, one subfolder
// per distributor. Best effort only; the pipeline never reads them back.
func (h *Handler) stageUploads(files []service.UploadedFile) {
	for _, f := range files {
		dir := filepath.Join(h.cfg.UploadDir, service.DistributorID(f.Name))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.log.Warn().Err(err).Str("dir", dir).Msg("stage upload")
			continue
		}
		dst := filepath.Join(dir, filepath.Base(f.Name))
		if err := os.WriteFile(dst, f.Data, 0o644); err != nil {
			h.log.Warn().Err(err).Str("path", dst).Msg("stage upload")
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
