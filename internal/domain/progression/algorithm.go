package progression

import (
	"math"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
)

// ThresholdForLevel returns the cumulative XP required to reach the
// given level.
//
// The contract is ThresholdForLevel(1) == 0 with a strictly increasing
// super-linear curve above that: floor(base * (level-1)^exponent).
// Each level therefore costs more XP than the last, which keeps
// low-value grinding from outpacing the curve.
//
// Pure, no side effects, no error conditions.
func ThresholdForLevel(level int, params *Params) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(float64(params.LevelBaseXP) * math.Pow(float64(level-1), params.LevelExponent)))
}

// LevelForXP returns the largest level whose threshold is covered by
// the given XP total.
//
// It scans upward from the profile's current level rather than from 1,
// which is amortized O(1) for normal incremental awards. Because the
// scan only moves upward, a derived level never decreases even if the
// curve parameters change between runs.
func LevelForXP(xp, currentLevel int, params *Params) int {
	level := currentLevel
	if level < 1 {
		level = 1
	}
	for xp >= ThresholdForLevel(level+1, params) {
		level++
	}
	return level
}

// applyXPAward increments the profile's XP, re-derives the level, and
// records the amount into the daily, weekly, and monthly analytics
// buckets keyed by the event's calendar date.
//
// A zero amount is a no-op beyond the analytics bookkeeping: the
// bucket entries for the date are still touched so the activity shows
// up in time-series views.
func applyXPAward(profile *domain.UserProfile, amount int, now time.Time, params *Params) *domain.UserProfile {
	next := profile.Clone()

	next.Analytics.DailyXP[DateKey(now)] += amount
	next.Analytics.WeeklyXP[WeekKey(now)] += amount
	next.Analytics.MonthlyXP[MonthKey(now)] += amount

	next.XP += amount
	next.Level = LevelForXP(next.XP, next.Level, params)

	return next
}

// applyMasteryUpdate adds the increment to the topic's detailed
// mastery (clamped at params.MaxMastery, never decreasing), recomputes
// the domain's aggregate as the rounded mean over all topics under
// that domain, and accumulates the increment into the domain velocity
// running total.
func applyMasteryUpdate(profile *domain.UserProfile, key string, increment int, params *Params) *domain.UserProfile {
	next := profile.Clone()

	value := next.DetailedMastery[key] + increment
	if value > params.MaxMastery {
		value = params.MaxMastery
	}
	next.DetailedMastery[key] = value

	masteryDomain := domain.MasteryKeyDomain(key)
	next.Mastery[masteryDomain] = domainMasteryMean(next.DetailedMastery, masteryDomain)
	next.Analytics.DomainVelocity[masteryDomain] += increment

	return next
}

// domainMasteryMean computes the rounded arithmetic mean of all
// detailed-mastery entries whose key's domain segment matches.
// Returns 0 when no entries exist, guarding the divide by zero.
func domainMasteryMean(detailed map[string]int, masteryDomain string) int {
	prefix := masteryDomain + ":"
	sum := 0
	count := 0
	for key, value := range detailed {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// applyStreakCheck evaluates the elapsed whole calendar days between
// now and the profile's last activity:
//
//   - 0 days and streak > 0: no change (already counted today)
//   - 0 days and streak == 0: first-ever visit, streak becomes 1
//   - exactly 1 day: continuation, streak increments
//   - more than 1 day: broken streak, reset to 1
//
// LastActive is always advanced to now regardless of branch.
func applyStreakCheck(profile *domain.UserProfile, now time.Time) *domain.UserProfile {
	next := profile.Clone()

	switch days := elapsedDays(next.LastActive, now); {
	case days == 1:
		next.Streak++
	case days > 1:
		next.Streak = 1
	case next.Streak == 0:
		next.Streak = 1
	}

	next.LastActive = now.UTC()
	return next
}

// applyActivityLog prepends the entry to the history, truncates to the
// configured limit, and increments the day's activity counter.
func applyActivityLog(profile *domain.UserProfile, entry domain.ActivityLogEntry, params *Params) *domain.UserProfile {
	next := profile.Clone()

	next.DailyActivity[DateKey(entry.Timestamp)]++

	history := make([]domain.ActivityLogEntry, 0, len(next.History)+1)
	history = append(history, entry)
	history = append(history, next.History...)
	if len(history) > params.HistoryLimit {
		history = history[:params.HistoryLimit]
	}
	next.History = history

	return next
}

// lessonXP derives the XP earned from a finished lesson:
// floor((score / quizLength) * xpReward).
func lessonXP(score, quizLength, xpReward int) int {
	return int(math.Floor(float64(score) / float64(quizLength) * float64(xpReward)))
}
