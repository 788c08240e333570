package cycle

import (
	"testing"
	"time"

	"zeladoria-bknd/internal/models"
)

var ref = time.Date(2026, time.March, 10, 15, 42, 7, 0, time.UTC)

func areaServicedDaysAgo(days int) *models.ServiceArea {
	return &models.ServiceArea{
		History: []models.HistoryEntry{
			{Date: "2020-01-01"},
			{Date: ref.AddDate(0, 0, -days).Format("2006-01-02")},
		},
	}
}

func TestClassify_NoHistory(t *testing.T) {
	area := &models.ServiceArea{}
	c := Classify(area, ref)
	if c.Bucket != BucketNoHistory {
		t.Errorf("bucket = %q, want %q", c.Bucket, BucketNoHistory)
	}
	if c.DaysSince != -1 {
		t.Errorf("daysSince = %d, want -1", c.DaysSince)
	}
}

func TestClassify_MalformedDate(t *testing.T) {
	area := &models.ServiceArea{
		History: []models.HistoryEntry{{Date: "not-a-date"}},
	}
	c := Classify(area, ref)
	if c.Bucket != BucketNoHistory {
		t.Errorf("bucket = %q, want %q", c.Bucket, BucketNoHistory)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		days int
		want Bucket
	}{
		{0, Bucket0to5},
		{5, Bucket0to5},
		{6, Bucket5to15},
		{15, Bucket5to15},
		{16, Bucket15to25},
		{25, Bucket15to25},
		{26, Bucket25to35},
		{35, Bucket25to35},
		{36, Bucket35to44},
		{44, Bucket35to44},
		{45, Bucket45Plus},
		{120, Bucket45Plus},
	}
	for _, tc := range cases {
		c := Classify(areaServicedDaysAgo(tc.days), ref)
		if c.Bucket != tc.want {
			t.Errorf("days=%d: bucket = %q, want %q", tc.days, c.Bucket, tc.want)
		}
		if c.DaysSince != tc.days {
			t.Errorf("days=%d: daysSince = %d", tc.days, c.DaysSince)
		}
	}
}

func TestClassify_FutureEventClampsToFreshest(t *testing.T) {
	// Last service dated after the reference day: clamps, does not error.
	c := Classify(areaServicedDaysAgo(-3), ref)
	if c.Bucket != Bucket0to5 {
		t.Errorf("bucket = %q, want %q", c.Bucket, Bucket0to5)
	}
	if c.DaysSince != -3 {
		t.Errorf("daysSince = %d, want -3", c.DaysSince)
	}
}

func TestClassify_TruncatesTimeOfDay(t *testing.T) {
	// Last service "yesterday" late at night, reference early morning: still
	// exactly one calendar day apart.
	area := &models.ServiceArea{
		History: []models.HistoryEntry{
			{Date: "2026-03-09T23:55:00Z"},
		},
	}
	earlyRef := time.Date(2026, time.March, 10, 0, 5, 0, 0, time.UTC)
	c := Classify(area, earlyRef)
	if c.DaysSince != 1 {
		t.Errorf("daysSince = %d, want 1", c.DaysSince)
	}
}

func TestBucketFor_PartitionsAllDayCounts(t *testing.T) {
	// Every non-negative day count lands in exactly one of the six buckets,
	// in non-decreasing urgency order.
	order := map[Bucket]int{}
	for i, b := range Buckets {
		order[b] = i
	}
	prev := -1
	for d := 0; d <= 120; d++ {
		b := BucketFor(d)
		idx, ok := order[b]
		if !ok {
			t.Fatalf("days=%d: BucketFor returned %q, not a real bucket", d, b)
		}
		if idx < prev {
			t.Fatalf("days=%d: bucket order regressed to %q", d, b)
		}
		prev = idx
	}
	if prev != len(Buckets)-1 {
		t.Errorf("day range never reached %q", Bucket45Plus)
	}
}

func TestParseBucket(t *testing.T) {
	for _, b := range Buckets {
		got, ok := ParseBucket(string(b))
		if !ok || got != b {
			t.Errorf("ParseBucket(%q) = %q, %v", b, got, ok)
		}
	}
	if _, ok := ParseBucket("no-history"); ok {
		t.Error("no-history must not parse as a bucket filter")
	}
	if _, ok := ParseBucket("0-6"); ok {
		t.Error("unknown tag must not parse")
	}
}

func TestDisplayTier(t *testing.T) {
	executing := areaServicedDaysAgo(2)
	executing.Status = models.StatusEmExecucao
	if got := DisplayTier(executing, ref); got != TierExecuting {
		t.Errorf("executing area: tier = %v, want TierExecuting", got)
	}

	if got := DisplayTier(&models.ServiceArea{}, ref); got != TierNeutral {
		t.Errorf("no history: tier = %v, want TierNeutral", got)
	}

	if got := DisplayTier(areaServicedDaysAgo(50), ref); got != TierOverdue {
		t.Errorf("50 days: tier = %v, want TierOverdue", got)
	}
	if got := DisplayTier(areaServicedDaysAgo(3), ref); got != TierFresh {
		t.Errorf("3 days: tier = %v, want TierFresh", got)
	}
}

func TestDisplayTier_Idempotent(t *testing.T) {
	area := areaServicedDaysAgo(20)
	first := DisplayTier(area, ref)
	second := DisplayTier(area, ref)
	if first != second {
		t.Errorf("tiers differ across calls: %v then %v", first, second)
	}
}

func TestTierColor(t *testing.T) {
	if TierOverdue.Color() != "#ef4444" {
		t.Errorf("overdue color = %q", TierOverdue.Color())
	}
	if TierNeutral.Color() != "#9ca3af" {
		t.Errorf("neutral color = %q", TierNeutral.Color())
	}
	if TierExecuting.Color() != TierDue.Color() {
		t.Error("executing and due tiers share the strong green on the legend")
	}
}
