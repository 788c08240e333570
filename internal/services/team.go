package services

import (
	"context"

	"zeladoria-bknd/internal/models"

	"github.com/uptrace/bun"
)

// TeamService reads field teams for display partitioning. Teams are
// positioned by an external tracker and never mutated here.
type TeamService struct {
	db *bun.DB
}

// NewTeamService creates a new team service
func NewTeamService(db *bun.DB) *TeamService {
	return &TeamService{db: db}
}

// ListTeams returns teams in stable ID order, optionally restricted to the
// given team types.
func (s *TeamService) ListTeams(ctx context.Context, types []string) ([]models.Team, error) {
	var teams []models.Team
	q := s.db.NewSelect().
		Model(&teams).
		Order("id ASC")

	if len(types) > 0 {
		q = q.Where("type IN (?)", bun.In(types))
	}

	err := q.Scan(ctx)
	return teams, err
}
