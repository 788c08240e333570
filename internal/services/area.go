package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"zeladoria-bknd/internal/cycle"
	"zeladoria-bknd/internal/models"

	"github.com/uptrace/bun"
)

// ErrStaleDate rejects a registration dated before an area's last recorded
// service. Appending it would break the chronological order of the ledger.
var ErrStaleDate = errors.New("registration date precedes the last recorded service")

// ErrNoAreasMatched means none of the requested area IDs exist.
var ErrNoAreasMatched = errors.New("no areas matched the given ids")

// CycleSummary counts areas per urgency bucket for one category.
type CycleSummary struct {
	Buckets   map[string]int `json:"buckets"`
	NoHistory int            `json:"no_history"`
	Total     int            `json:"total"`
}

// AreaService handles service-area business logic
type AreaService struct {
	db *bun.DB
}

// NewAreaService creates a new area service
func NewAreaService(db *bun.DB) *AreaService {
	return &AreaService{db: db}
}

// ListByCategory returns the inventory for one category in stable ID order.
// The order is part of the contract: filtering downstream preserves it.
func (s *AreaService) ListByCategory(ctx context.Context, category string) ([]models.ServiceArea, error) {
	var areas []models.ServiceArea
	err := s.db.NewSelect().
		Model(&areas).
		Where("category = ?", category).
		Order("id ASC").
		Scan(ctx)
	return areas, err
}

// GetByID returns a single area.
func (s *AreaService) GetByID(ctx context.Context, id int64) (*models.ServiceArea, error) {
	area := new(models.ServiceArea)
	err := s.db.NewSelect().
		Model(area).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return area, nil
}

// RegisterDaily appends one history event dated date to every existing area
// in areaIDs, in a single transaction. IDs that match no row are skipped and
// the returned count reflects only the areas actually updated; a set with no
// matches at all fails with ErrNoAreasMatched. The whole command is rejected
// when date is older than any targeted area's last event, so the ledger stays
// chronological.
func (s *AreaService) RegisterDaily(ctx context.Context, areaIDs []int64, date time.Time) (int, error) {
	day := date.Format("2006-01-02")
	registeredDay := cycle.DateOnly(date)

	var count int
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var areas []models.ServiceArea
		if err := tx.NewSelect().
			Model(&areas).
			Where("id IN (?)", bun.In(areaIDs)).
			Order("id ASC").
			For("UPDATE").
			Scan(ctx); err != nil {
			return err
		}
		if len(areas) == 0 {
			return ErrNoAreasMatched
		}

		now := time.Now()
		for i := range areas {
			area := &areas[i]

			if last := area.LastHistory(); last != nil {
				if lastDay, ok := last.Day(); ok && registeredDay.Before(lastDay) {
					return fmt.Errorf("%w: area %d last serviced on %s", ErrStaleDate, area.ID, last.Date)
				}
			}

			area.History = append(area.History, models.HistoryEntry{Date: day})
			area.UpdatedAt = now

			if _, err := tx.NewUpdate().
				Model(area).
				Column("history", "updated_at").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
		}

		count = len(areas)
		return nil
	})
	return count, err
}

// UpdatePosition moves an area marker. Only the coordinates change; the
// classification inputs are untouched.
func (s *AreaService) UpdatePosition(ctx context.Context, id int64, lat, lng float64) error {
	res, err := s.db.NewUpdate().
		Model((*models.ServiceArea)(nil)).
		Set("lat = ?", lat).
		Set("lng = ?", lng).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Summary classifies every area in one category against ref and counts them
// per bucket.
func (s *AreaService) Summary(ctx context.Context, category string, ref time.Time) (*CycleSummary, error) {
	areas, err := s.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	summary := &CycleSummary{
		Buckets: make(map[string]int, len(cycle.Buckets)),
		Total:   len(areas),
	}
	for _, b := range cycle.Buckets {
		summary.Buckets[string(b)] = 0
	}

	for i := range areas {
		c := cycle.Classify(&areas[i], ref)
		if c.Bucket == cycle.BucketNoHistory {
			summary.NoHistory++
			continue
		}
		summary.Buckets[string(c.Bucket)]++
	}
	return summary, nil
}
