package handlers

import (
	"context"
	"net/http"

	"zeladoria-bknd/internal/models"
	"zeladoria-bknd/internal/utils"

	"go.uber.org/zap"
)

// TeamService is the slice of the team service the handler depends on.
type TeamService interface {
	ListTeams(ctx context.Context, types []string) ([]models.Team, error)
}

// TeamHandler handles HTTP requests for field teams
type TeamHandler struct {
	service TeamService
	logr    *zap.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(svc TeamService, logr *zap.Logger) *TeamHandler {
	return &TeamHandler{service: svc, logr: logr}
}

// GetTeams handles GET /teams. Accepts ?type=Coleta,Capina (or repeated
// params) to restrict the team categories returned.
func (h *TeamHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	types := utils.ParseQueryList(r.URL.Query(), "type")

	teams, err := h.service.ListTeams(ctx, types)
	if err != nil {
		h.logr.Error("failed to list teams", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to retrieve teams",
		})
		return
	}

	writeJSON(w, http.StatusOK, models.TeamsResponse{
		Data:  teams,
		Count: len(teams),
	})
}
