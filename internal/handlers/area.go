package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"zeladoria-bknd/internal/cycle"
	"zeladoria-bknd/internal/filter"
	"zeladoria-bknd/internal/models"
	"zeladoria-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AreaService is the slice of the area service the handlers depend on.
// services.AreaService is the production implementation.
type AreaService interface {
	ListByCategory(ctx context.Context, category string) ([]models.ServiceArea, error)
	RegisterDaily(ctx context.Context, areaIDs []int64, date time.Time) (int, error)
	UpdatePosition(ctx context.Context, id int64, lat, lng float64) error
	Summary(ctx context.Context, category string, ref time.Time) (*services.CycleSummary, error)
}

// AreaHandler handles HTTP requests for service areas
type AreaHandler struct {
	service AreaService
	logr    *zap.Logger
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(svc AreaService, logr *zap.Logger) *AreaHandler {
	return &AreaHandler{service: svc, logr: logr}
}

func validCategory(category string) bool {
	return category == models.CategoryRocagem || category == models.CategoryJardins
}

// GetAreas handles GET /areas/{category}. Filter query params (search,
// bairro, lote, status, tipo, range, date) are applied over the loaded
// inventory snapshot; the database order is preserved.
func (h *AreaHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")

	if !validCategory(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown category, expected rocagem or jardins",
		})
		return
	}

	q := r.URL.Query()

	tr, ok := filter.ParseTimeRange(q.Get("range"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid range filter",
		})
		return
	}

	// An absent date with range=custom is not an error: the filter simply
	// matches nothing.
	var customDate *time.Time
	if tr == filter.RangeCustom {
		if ds := q.Get("date"); ds != "" {
			d, err := time.Parse("2006-01-02", ds)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "invalid date, expected YYYY-MM-DD",
				})
				return
			}
			customDate = &d
		}
	}

	crit := filter.Criteria{
		Search: q.Get("search"),
		Bairro: q.Get("bairro"),
		Lote:   q.Get("lote"),
		Status: q.Get("status"),
		Tipo:   q.Get("tipo"),
	}

	areas, err := h.service.ListByCategory(ctx, category)
	if err != nil {
		h.logr.Error("failed to list areas", zap.Error(err), zap.String("category", category))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to retrieve areas",
		})
		return
	}

	filtered := filter.Apply(areas, tr, customDate, crit, time.Now())

	writeJSON(w, http.StatusOK, models.AreasResponse{
		Data:  filtered,
		Count: len(filtered),
	})
}

// GetCycleSummary handles GET /areas/{category}/summary: per-bucket counts of
// the inventory against today.
func (h *AreaHandler) GetCycleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")

	if !validCategory(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown category, expected rocagem or jardins",
		})
		return
	}

	summary, err := h.service.Summary(ctx, category, time.Now())
	if err != nil {
		h.logr.Error("failed to build cycle summary", zap.Error(err), zap.String("category", category))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to build summary",
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// RegisterDaily handles POST /areas/register-daily: one new history event per
// selected area, all dated the same day.
func (h *AreaHandler) RegisterDaily(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	if len(req.AreaIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "at least one area id is required",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid date, expected YYYY-MM-DD",
		})
		return
	}

	if cycle.DateOnly(date).After(cycle.DateOnly(time.Now())) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "registration date cannot be in the future",
		})
		return
	}

	batchID := uuid.NewString()
	count, err := h.service.RegisterDaily(r.Context(), req.AreaIDs, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaleDate):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrNoAreasMatched):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "no areas matched the given ids",
			})
		default:
			h.logr.Error("failed to register areas",
				zap.Error(err),
				zap.String("batch_id", batchID))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to register areas",
			})
		}
		return
	}

	// IDs that matched no row were skipped by the service; surface the gap
	if count < len(req.AreaIDs) {
		h.logr.Warn("some requested areas do not exist",
			zap.String("batch_id", batchID),
			zap.Int("requested", len(req.AreaIDs)),
			zap.Int("registered", count))
	}

	h.logr.Info("daily registration recorded",
		zap.String("batch_id", batchID),
		zap.Int("count", count),
		zap.String("date", req.Date))

	writeJSON(w, http.StatusOK, models.RegisterDailyResponse{
		Message: fmt.Sprintf("%d área(s) registrada(s) com sucesso", count),
		Count:   count,
	})
}

// UpdatePosition handles PATCH /areas/{id}/position
func (h *AreaHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid id parameter",
		})
		return
	}

	var req models.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "coordinates out of range",
		})
		return
	}

	if err := h.service.UpdatePosition(r.Context(), id, req.Lat, req.Lng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "area not found",
			})
			return
		}
		h.logr.Error("failed to update position", zap.Error(err), zap.Int64("id", id))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to update position",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "position updated",
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
