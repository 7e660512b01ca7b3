package services

import (
	"sync"
	"time"

	"college-portal-api/models"
)

// DashboardSnapshot is the institution-wide aggregate the dashboards render.
type DashboardSnapshot struct {
	Departments    []RankedRow            `json:"departments"`
	Totals         models.AnalyticsTotals `json:"totals"`
	CollectionRate float64                `json:"collection_rate"`
	RefreshedAt    time.Time              `json:"refreshed_at"`
}

// DashboardCache holds the latest snapshot behind a TTL. Refreshes carry a
// generation stamp: when two refreshes overlap, the one that started later
// wins, and an older query that resolves afterwards is discarded instead of
// overwriting newer data.
type DashboardCache struct {
	analytics *FeeAnalyticsService
	ttl       time.Duration

	mu      sync.Mutex
	nextGen uint64
	snapGen uint64
	snap    *DashboardSnapshot
}

func NewDashboardCache(analytics *FeeAnalyticsService, ttl time.Duration) *DashboardCache {
	return &DashboardCache{analytics: analytics, ttl: ttl}
}

// Snapshot returns the cached snapshot, refreshing when stale or missing.
func (c *DashboardCache) Snapshot() (*DashboardSnapshot, error) {
	c.mu.Lock()
	if c.snap != nil && time.Since(c.snap.RefreshedAt) < c.ttl {
		snap := c.snap
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	return c.Refresh()
}

// Refresh recomputes the snapshot from a fresh query. On error the previous
// snapshot is left in place (stale-but-valid beats empty).
func (c *DashboardCache) Refresh() (*DashboardSnapshot, error) {
	gen := c.begin()

	rows, err := c.analytics.DepartmentSummaries(&FeeRecordFilter{})
	if err != nil {
		return nil, err
	}

	totals := SummaryTotals(rows)
	snap := &DashboardSnapshot{
		Departments:    RankByCollection(rows),
		Totals:         totals,
		CollectionRate: CollectionRate(totals),
		RefreshedAt:    time.Now(),
	}
	return c.store(gen, snap), nil
}

// Invalidate drops the cached snapshot so the next read refetches.
func (c *DashboardCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *DashboardCache) begin() uint64 {
	c.mu.Lock()
	c.nextGen++
	gen := c.nextGen
	c.mu.Unlock()
	return gen
}

// store installs snap unless a refresh with a newer generation already
// finished. It returns whichever snapshot is current afterwards.
func (c *DashboardCache) store(gen uint64, snap *DashboardSnapshot) *DashboardSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen >= c.snapGen {
		c.snap = snap
		c.snapGen = gen
	}
	return c.snap
}
