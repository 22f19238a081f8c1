package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/models"
)

// maxImportBytes caps the import payload size.
const maxImportBytes = 10 << 20

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError maps the error taxonomy onto HTTP statuses: validation errors
// are 400, a denied permission is 403, everything else is 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var verr *journal.ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, journal.ErrPermissionDenied):
		status = http.StatusForbidden
	default:
		s.logger.Error("Request failed", zap.Error(err))
	}
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.ListTrades())
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var draft models.Trade
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid trade payload"})
		return
	}

	trade, err := s.service.SaveTrade(draft)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, trade)
}

// handlePreviewTrade returns the live profit/loss summary for a draft trade
// while the entry form is being filled in. Nothing is persisted.
func (s *Server) handlePreviewTrade(w http.ResponseWriter, r *http.Request) {
	var draft models.Trade
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid trade payload"})
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.PreviewTrade(draft))
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	removed, err := s.service.DeleteTrade(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if !removed {
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "trade not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := journal.ExportFilename("csv", time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.WriteString(w, s.service.ExportTradesCSV())
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportTradesJSON()
	if err != nil {
		s.respondError(w, err)
		return
	}

	filename := journal.ExportFilename("json", time.Now())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func (s *Server) handleImportTrades(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.respondError(w, fmt.Errorf("failed to read import payload: %w", err))
		return
	}

	added, err := s.service.ImportTrades(payload)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{"imported": added})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.ListAlerts())
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var draft models.PriceAlert
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid alert payload"})
		return
	}

	alert, err := s.service.CreateAlert(draft)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, alert)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	removed, err := s.service.DeleteAlert(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if !removed {
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "alert not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTriggerAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := s.service.TriggerAlert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, alert)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updated models.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid settings payload"})
		return
	}

	settings, err := s.service.UpdateSettings(updated)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleTogglePush(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid push toggle payload"})
		return
	}

	var (
		settings models.NotificationSettings
		err      error
	)
	if body.Enabled {
		settings, err = s.service.EnablePush(r.Context())
	} else {
		settings, err = s.service.DisablePush(r.Context())
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleListPairs(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.ListPairs())
}

func (s *Server) handleAddPair(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pair string `json:"pair"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, &journal.ValidationError{Reason: "invalid pair payload"})
		return
	}

	if err := s.service.AddPair(body.Pair); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.ListPairs())
}

// handleSeedConditions returns the predefined condition templates for an
// action, instantiated with fresh ids for the entry form.
func (s *Server) handleSeedConditions(w http.ResponseWriter, r *http.Request) {
	action := models.Action(chi.URLParam(r, "action"))
	if !action.Valid() {
		s.respondError(w, &journal.ValidationError{Reason: fmt.Sprintf("invalid action %q", action)})
		return
	}
	s.respondJSON(w, http.StatusOK, models.SeedConditions(action))
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.TradeStats())
}
