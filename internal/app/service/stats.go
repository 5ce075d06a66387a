// internal/app/service/stats.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/app/system/fanout"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

const (
	statsDefaultDays = 30
	statsMaxDays     = 365

	recentCompletionCount = 10
)

// Stats aggregates a user's completion log. All aggregation happens in
// process over the fetched window; the store contributes only the filtered
// fetch.
type Stats struct {
	completions CompletionStore
	habits      HabitStore
	guard       *authz.Guard
}

// WindowStats is the REST stats payload: counts over a trailing day window.
type WindowStats struct {
	PeriodDays          int            `json:"periodDays"`
	TotalCompletions    int            `json:"totalCompletions"`
	UniqueHabitsCount   int            `json:"uniqueHabitsCount"`
	CompletionsByDay    map[string]int `json:"completionsByDay"`
	CompletionsByHabit  map[string]int `json:"completionsByHabit"`
	CompletionsBySource map[string]int `json:"completionsBySource"`
}

// Window computes stats over the trailing days window, owner or elevated
// role only. Days are clamped to [1, 365], defaulting to 30.
func (s *Stats) Window(ctx context.Context, ident *authn.Identity, userID string, days int) (WindowStats, error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return WindowStats{}, err
	}
	days = paging.ClampLimit(days, statsDefaultDays, statsMaxDays)

	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.completions.Window(ctx, userID, since)
	if err != nil {
		return WindowStats{}, err
	}

	out := WindowStats{
		PeriodDays:          days,
		TotalCompletions:    len(rows),
		CompletionsByDay:    map[string]int{},
		CompletionsByHabit:  map[string]int{},
		CompletionsBySource: map[string]int{},
	}
	habitsSeen := map[string]bool{}
	for _, e := range rows {
		out.CompletionsByDay[e.CompletedAt.UTC().Format("2006-01-02")]++
		out.CompletionsByHabit[e.HabitID]++
		out.CompletionsBySource[e.Source]++
		habitsSeen[e.HabitID] = true
	}
	out.UniqueHabitsCount = len(habitsSeen)
	return out, nil
}

// CategoryShare is one slice of the category breakdown.
type CategoryShare struct {
	Category   string
	Count      int
	Percentage float64
}

// Summary is the GraphQL stats payload: lifetime totals, streaks, category
// breakdown, and the latest entries.
type Summary struct {
	TotalCompletions      int
	CompletionsThisWeek   int
	CompletionsThisMonth  int
	CurrentStreak         int
	LongestStreak         int
	CompletionsByCategory []CategoryShare
	RecentCompletions     []models.CompletionLog
}

// Summarize computes lifetime stats, owner or elevated role only.
//
// Streaks count consecutive UTC days with at least one completion. The
// current streak is the run ending today or yesterday (a completion earlier
// today is not required to keep the streak alive); the longest streak is the
// maximum run anywhere in the log.
func (s *Stats) Summarize(ctx context.Context, ident *authn.Identity, userID string) (Summary, error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return Summary{}, err
	}

	rows, err := s.completions.Window(ctx, userID, time.Time{})
	if err != nil {
		return Summary{}, err
	}

	now := time.Now().UTC()
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := Summary{TotalCompletions: len(rows)}
	days := map[string]bool{}
	habitCounts := map[string]int{}
	for _, e := range rows {
		at := e.CompletedAt.UTC()
		if !at.Before(weekStart) {
			out.CompletionsThisWeek++
		}
		if !at.Before(monthStart) {
			out.CompletionsThisMonth++
		}
		days[at.Format("2006-01-02")] = true
		habitCounts[e.HabitID]++
	}
	out.CurrentStreak, out.LongestStreak = streaks(days, now)

	byCategory, err := s.categoryShares(ctx, habitCounts, len(rows))
	if err != nil {
		return Summary{}, err
	}
	out.CompletionsByCategory = byCategory

	recent, err := s.completions.Recent(ctx, userID, recentCompletionCount)
	if err != nil {
		return Summary{}, err
	}
	out.RecentCompletions = recent
	return out, nil
}

// categoryShares resolves completed habit IDs to categories and converts the
// per-habit counts to per-category counts with percentages. Completions whose
// habit no longer exists are grouped under "unknown".
func (s *Stats) categoryShares(ctx context.Context, habitCounts map[string]int, total int) ([]CategoryShare, error) {
	if total == 0 {
		return []CategoryShare{}, nil
	}

	ids := make([]string, 0, len(habitCounts))
	for id := range habitCounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	habits, err := fanout.Resolve(ctx, ids, fanout.DefaultChunkSize, s.habits.ByIDs,
		func(h models.Habit) string { return h.ID })
	if err != nil {
		return nil, err
	}
	categoryOf := map[string]string{}
	for _, h := range habits {
		categoryOf[h.ID] = h.Category
	}

	counts := map[string]int{}
	for id, n := range habitCounts {
		cat := categoryOf[id]
		if cat == "" {
			cat = "unknown"
		}
		counts[cat] += n
	}

	cats := make([]string, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	shares := make([]CategoryShare, 0, len(cats))
	for _, cat := range cats {
		n := counts[cat]
		shares = append(shares, CategoryShare{
			Category:   cat,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}
	return shares, nil
}

// streaks walks the set of completed days backwards from today.
func streaks(days map[string]bool, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	// Current streak: walk back from today, allowing the run to start
	// yesterday.
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	// Longest streak: scan the sorted unique days for the longest
	// consecutive run.
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		prev, _ := time.Parse("2006-01-02", sorted[i-1])
		cur, _ := time.Parse("2006-01-02", sorted[i])
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

// startOfWeek returns the UTC midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
