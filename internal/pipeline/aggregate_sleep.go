package pipeline

import (
	"sort"

	"github.com/claude/healthsheet/internal/models"
)

// AggregateNightlySleep folds sleep sessions into one summary per night,
// ordered by date. The fold is two-phase: group by night first, then reduce
// each group into an immutable summary, so no partially-built accumulator
// ever escapes.
func AggregateNightlySleep(sessions []models.SleepSession) []models.DailySleepSummary {
	groups := make(map[string][]models.SleepSession)
	for _, s := range sessions {
		groups[s.NightDate] = append(groups[s.NightDate], s)
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summaries := make([]models.DailySleepSummary, 0, len(dates))
	for _, d := range dates {
		summaries = append(summaries, reduceNight(d, groups[d]))
	}
	return summaries
}

// reduceNight builds the summary for one night. Bedtime is the time-of-day
// of the earliest session start; wake time the latest session end. Stage
// minutes are summed per normalized bucket; StageUnknown contributes to no
// total. All rounding happens here, once.
func reduceNight(date string, night []models.SleepSession) models.DailySleepSummary {
	bedtime := night[0].Start
	wake := night[0].End
	var inBed, asleep, awake, core, deep, rem float64

	for _, s := range night {
		if s.Start.Before(bedtime) {
			bedtime = s.Start
		}
		if s.End.After(wake) {
			wake = s.End
		}
		switch s.Stage {
		case models.StageInBed:
			inBed += s.DurationMinutes
		case models.StageAsleep:
			asleep += s.DurationMinutes
		case models.StageAwake:
			awake += s.DurationMinutes
		case models.StageCore:
			core += s.DurationMinutes
		case models.StageDeep:
			deep += s.DurationMinutes
		case models.StageREM:
			rem += s.DurationMinutes
		}
	}

	return models.DailySleepSummary{
		Date:            date,
		Bedtime:         models.ClockOf(bedtime),
		WakeTime:        models.ClockOf(wake),
		TimeInBedHours:  round2(inBed / 60),
		TotalSleepHours: round2((asleep + core + deep + rem) / 60),
		AwakeMinutes:    round1(awake),
		CoreSleepHours:  round2(core / 60),
		DeepSleepHours:  round2(deep / 60),
		REMSleepHours:   round2(rem / 60),
	}
}
