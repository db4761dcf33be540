package lostfound

import (
	"context"
	"sort"
	"time"

	"github.com/campusfound/campusfound-go/transport"
)

// trendDays is the window of the daily publishing trend.
const trendDays = 7

// ItemStats is a client-side reduction over the full item listing.
type ItemStats struct {
	Total     int
	Claimed   int
	Unclaimed int
	// ClaimRate is a percentage in [0, 100]; zero when no items exist.
	ClaimRate float64

	TypeDistribution     map[ItemType]int
	ColorDistribution    map[Color]int
	BuildingDistribution map[string]int
	// DailyTrend maps the last trendDays dates (YYYY-MM-DD) to publish
	// counts, including zero days.
	DailyTrend map[string]int

	RecentItems []LostItem
}

// AdminActivity is one administrator's publish/claim tally.
type AdminActivity struct {
	AdminID   int64
	Published int
	Claimed   int
	Unclaimed int
}

// AdminStats ranks administrators by publish volume.
type AdminStats struct {
	TotalAdmins int
	Activity    []AdminActivity // descending by Published
}

// Overview is the today/this-week snapshot.
type Overview struct {
	TodayPublished int
	TodayClaimed   int
	WeekPublished  int
	WeekClaimed    int
}

// StatisticsAPI derives aggregate numbers from fetched listings. The
// backend exposes no statistics endpoints, so everything here is computed
// client-side from the unclaimed-items feed; the fetch retries on
// transient failures.
type StatisticsAPI struct {
	items  *ItemsAPI
	policy transport.Policy
	now    func() time.Time
}

// NewStatistics binds the statistics surface. The policy governs the
// underlying list fetch; use [transport.NoRetryPolicy] to disable retries.
func NewStatistics(items *ItemsAPI, policy transport.Policy) *StatisticsAPI {
	return &StatisticsAPI{items: items, policy: policy, now: time.Now}
}

// ItemStats fetches the item listing and reduces it.
func (a *StatisticsAPI) ItemStats(ctx context.Context) (*ItemStats, error) {
	items, err := a.items.all(ctx, a.policy)
	if err != nil {
		return nil, err
	}
	return reduceItems(items, a.now()), nil
}

// AdminStats fetches the item listing and tallies per-admin activity.
func (a *StatisticsAPI) AdminStats(ctx context.Context) (*AdminStats, error) {
	items, err := a.items.all(ctx, a.policy)
	if err != nil {
		return nil, err
	}
	return reduceAdmins(items), nil
}

// Overview fetches the item listing and reduces it to the today/this-week
// snapshot.
func (a *StatisticsAPI) Overview(ctx context.Context) (*Overview, error) {
	items, err := a.items.all(ctx, a.policy)
	if err != nil {
		return nil, err
	}
	return reduceOverview(items, a.now()), nil
}

func reduceItems(items []LostItem, now time.Time) *ItemStats {
	stats := &ItemStats{
		TypeDistribution:     make(map[ItemType]int),
		ColorDistribution:    make(map[Color]int),
		BuildingDistribution: make(map[string]int),
		DailyTrend:           make(map[string]int, trendDays),
	}

	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(time.DateOnly)
		stats.DailyTrend[day] = 0
	}

	for _, item := range items {
		stats.Total++
		if item.Claimed() {
			stats.Claimed++
		}
		stats.TypeDistribution[item.Type]++
		stats.ColorDistribution[item.Color]++
		if item.Building != "" {
			stats.BuildingDistribution[item.Building]++
		}
		if !item.PublishTime.IsZero() {
			day := item.PublishTime.Format(time.DateOnly)
			if _, ok := stats.DailyTrend[day]; ok {
				stats.DailyTrend[day]++
			}
		}
	}

	stats.Unclaimed = stats.Total - stats.Claimed
	if stats.Total > 0 {
		stats.ClaimRate = float64(stats.Claimed) / float64(stats.Total) * 100
	}

	n := len(items)
	if n > 10 {
		n = 10
	}
	stats.RecentItems = items[:n]
	return stats
}

func reduceAdmins(items []LostItem) *AdminStats {
	byAdmin := make(map[int64]*AdminActivity)
	for _, item := range items {
		if item.AdminID <= 0 {
			continue
		}
		act, ok := byAdmin[item.AdminID]
		if !ok {
			act = &AdminActivity{AdminID: item.AdminID}
			byAdmin[item.AdminID] = act
		}
		act.Published++
		if item.Claimed() {
			act.Claimed++
		} else {
			act.Unclaimed++
		}
	}

	activity := make([]AdminActivity, 0, len(byAdmin))
	for _, act := range byAdmin {
		activity = append(activity, *act)
	}
	sort.Slice(activity, func(i, j int) bool {
		if activity[i].Published != activity[j].Published {
			return activity[i].Published > activity[j].Published
		}
		return activity[i].AdminID < activity[j].AdminID
	})

	return &AdminStats{TotalAdmins: len(activity), Activity: activity}
}

func reduceOverview(items []LostItem, now time.Time) *Overview {
	today := now.Format(time.DateOnly)
	weekAgo := now.AddDate(0, 0, -trendDays)

	var ov Overview
	for _, item := range items {
		if item.PublishTime.IsZero() {
			continue
		}
		if item.PublishTime.Format(time.DateOnly) == today {
			ov.TodayPublished++
			if item.Claimed() {
				ov.TodayClaimed++
			}
		}
		if item.PublishTime.After(weekAgo) {
			ov.WeekPublished++
			if item.Claimed() {
				ov.WeekClaimed++
			}
		}
	}
	return &ov
}
