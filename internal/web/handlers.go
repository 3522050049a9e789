package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/revoltmotors/leadclean/internal/blocklist"
	"github.com/revoltmotors/leadclean/internal/logging"
	"github.com/revoltmotors/leadclean/internal/sheetio"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleClean accepts a workbook upload, runs the cleaning pass, and
// returns the cleaned workbook as an xlsx attachment. Run metadata comes
// back in response headers so scripted callers can fetch the flagged log
// without parsing the body.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds %d bytes", s.cfg.Upload.MaxFileSize))
			return
		}
		writeError(ctx, w, http.StatusBadRequest, "missing file field in multipart form")
		return
	}
	defer file.Close()

	sheets, err := sheetio.Read(header.Filename, file)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	runCtx, cancel := timeoutContext(ctx, s.cfg.Upload.Timeout)
	defer cancel()

	rec, err := s.cleaner.Clean(runCtx, sheets)
	if err != nil {
		writeError(ctx, w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := sheetio.Write(&buf, rec.Result.Sheets); err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "failed to render cleaned workbook")
		return
	}

	log.Info("cleaning run complete",
		"run_id", rec.ID,
		"file", header.Filename,
		"sheets", len(rec.Result.Sheets),
		"total_rows", rec.TotalRows,
		"removed_rows", rec.RemovedRows,
		"new_numbers", rec.Result.NewNumbers,
		"flagged", len(rec.Result.Diagnostics),
	)

	outName := cleanedFilename(header.Filename)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	w.Header().Set("X-Run-Id", rec.ID)
	w.Header().Set("X-New-Numbers", strconv.Itoa(rec.Result.NewNumbers))
	w.Header().Set("X-Removed-Rows", strconv.Itoa(rec.RemovedRows))
	w.Write(buf.Bytes())
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.cleaner.Run(chi.URLParam(r, "runID"))
	if !ok {
		writeError(r.Context(), w, http.StatusNotFound, "run not found")
		return
	}

	writeJSON(w, map[string]any{
		"id":           rec.ID,
		"started_at":   rec.StartedAt.Format(time.RFC3339),
		"total_rows":   rec.TotalRows,
		"removed_rows": rec.RemovedRows,
		"new_numbers":  rec.Result.NewNumbers,
		"flagged":      len(rec.Result.Diagnostics),
	})
}

// handleRunLog serves the flagged-rows log for a run as plain text, one
// line per rejected field or suppressed row.
func (s *Server) handleRunLog(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.cleaner.Run(chi.URLParam(r, "runID"))
	if !ok {
		writeError(r.Context(), w, http.StatusNotFound, "run not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, rec.Result.FlaggedLog())
}

func (s *Server) handleBlocklist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.cleaner.Blocklist()
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to read blocklist")
		return
	}

	type entryJSON struct {
		Mobile    string `json:"mobile"`
		DateAdded string `json:"date_added,omitempty"`
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		ej := entryJSON{Mobile: e.Number}
		if !e.Date.IsZero() {
			ej.DateAdded = e.Date.Format(blocklist.DateLayout)
		}
		out = append(out, ej)
	}
	writeJSON(w, map[string]any{"count": len(out), "entries": out})
}

func timeoutContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func cleanedFilename(upload string) string {
	base := upload
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" {
		base = "workbook"
	}
	return base + "_cleaned.xlsx"
}
