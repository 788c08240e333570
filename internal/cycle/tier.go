package cycle

import (
	"time"

	"zeladoria-bknd/internal/models"
)

// Tier is the rendering emphasis for an area marker, ordered from neutral to
// strongest. It only affects presentation, never filtering.
type Tier int

const (
	TierNeutral Tier = iota
	TierFresh
	TierRecent
	TierMidCycle
	TierApproaching
	TierDue
	TierOverdue
	TierExecuting
)

// SelectedColor overrides the tier color for areas in the working selection.
const SelectedColor = "#9333ea"

// DisplayTier maps an area to its marker tier. Areas being worked on right
// now always take the strongest tier regardless of elapsed days; areas
// without history take the neutral tier; everything else follows the bucket
// scale.
func DisplayTier(area *models.ServiceArea, ref time.Time) Tier {
	if area.Status == models.StatusEmExecucao {
		return TierExecuting
	}
	switch Classify(area, ref).Bucket {
	case Bucket0to5:
		return TierFresh
	case Bucket5to15:
		return TierRecent
	case Bucket15to25:
		return TierMidCycle
	case Bucket25to35:
		return TierApproaching
	case Bucket35to44:
		return TierDue
	case Bucket45Plus:
		return TierOverdue
	default:
		return TierNeutral
	}
}

// Color returns the legend color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierExecuting:
		return "#10b981"
	case TierFresh:
		return "#d1fae5"
	case TierRecent:
		return "#a7f3d0"
	case TierMidCycle:
		return "#6ee7b7"
	case TierApproaching:
		return "#34d399"
	case TierDue:
		return "#10b981"
	case TierOverdue:
		return "#ef4444"
	default:
		return "#9ca3af"
	}
}
