package filter

import (
	"strconv"
	"strings"
	"time"

	"zeladoria-bknd/internal/cycle"
	"zeladoria-bknd/internal/models"
)

// Criteria are the categorical filters from the dashboard sidebar. An empty
// value or the literal "all" leaves that dimension unfiltered.
type Criteria struct {
	Search string
	Bairro string
	Lote   string
	Status string
	Tipo   string
}

func (c Criteria) active() bool {
	return c.Search != "" ||
		filtered(c.Bairro) ||
		filtered(c.Lote) ||
		filtered(c.Status) ||
		filtered(c.Tipo)
}

func filtered(v string) bool {
	return v != "" && v != "all"
}

// TimeRange selects areas by the bucket of their last service. RangeCustom
// instead matches the exact calendar day of the last service and requires a
// date alongside it.
type TimeRange string

const (
	RangeNone   TimeRange = ""
	RangeCustom TimeRange = "custom"
)

// ParseTimeRange maps a query tag to a TimeRange. ok is false for tags that
// are neither empty, "none", "custom", nor one of the six buckets.
func ParseTimeRange(tag string) (TimeRange, bool) {
	switch tag {
	case "", "none":
		return RangeNone, true
	case "custom":
		return RangeCustom, true
	}
	if b, ok := cycle.ParseBucket(tag); ok {
		return TimeRange(b), true
	}
	return RangeNone, false
}

// Apply filters areas, temporal filter first, then categorical criteria.
//
// The input order is preserved and the input slice is never mutated. Areas
// without history never match any time range, including RangeCustom; a
// RangeCustom filter with a nil date matches nothing. Malformed or absent
// optional fields never fail the whole pass, they just don't match.
func Apply(areas []models.ServiceArea, tr TimeRange, customDate *time.Time, crit Criteria, ref time.Time) []models.ServiceArea {
	out := areas

	if tr != RangeNone {
		out = make([]models.ServiceArea, 0, len(areas))
		for i := range areas {
			if matchesTimeRange(&areas[i], tr, customDate, ref) {
				out = append(out, areas[i])
			}
		}
	}

	// Nothing categorical active: skip the second pass
	if !crit.active() {
		return out
	}

	kept := make([]models.ServiceArea, 0, len(out))
	for i := range out {
		if matchesCriteria(&out[i], crit) {
			kept = append(kept, out[i])
		}
	}
	return kept
}

func matchesTimeRange(a *models.ServiceArea, tr TimeRange, customDate *time.Time, ref time.Time) bool {
	c := cycle.Classify(a, ref)
	if c.Bucket == cycle.BucketNoHistory {
		return false
	}

	if tr == RangeCustom {
		if customDate == nil {
			return false
		}
		day, ok := a.LastHistory().Day()
		if !ok {
			return false
		}
		return cycle.SameDay(day, *customDate)
	}

	return string(c.Bucket) == string(tr)
}

func matchesCriteria(a *models.ServiceArea, c Criteria) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		endereco := strings.ToLower(a.Endereco)
		bairro := ""
		if a.Bairro != nil {
			bairro = strings.ToLower(*a.Bairro)
		}
		if !strings.Contains(endereco, q) && !strings.Contains(bairro, q) {
			return false
		}
	}

	if filtered(c.Bairro) && (a.Bairro == nil || *a.Bairro != c.Bairro) {
		return false
	}

	// Lot numbers are compared as display strings
	if filtered(c.Lote) && (a.Lote == nil || strconv.Itoa(*a.Lote) != c.Lote) {
		return false
	}

	if filtered(c.Status) && a.Status != c.Status {
		return false
	}

	if filtered(c.Tipo) && a.Tipo != c.Tipo {
		return false
	}

	return true
}
