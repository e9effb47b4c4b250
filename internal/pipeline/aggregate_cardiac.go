package pipeline

import (
	"sort"

	"github.com/claude/healthsheet/internal/models"
)

// AggregateDailyCardiac folds cardiac measurements into one summary per
// calendar date, ordered by date. Heart rate readings get count/avg/min/max;
// resting heart rate and HRV keep only the last value observed in input
// order for that date. The last-write-wins policy is deliberate, for
// compatibility with the system this replaces; see DESIGN.md.
func AggregateDailyCardiac(measurements []models.CardiacMeasurement) []models.DailyCardiacSummary {
	groups := make(map[string][]models.CardiacMeasurement)
	for _, m := range measurements {
		groups[m.Date] = append(groups[m.Date], m)
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summaries := make([]models.DailyCardiacSummary, 0, len(dates))
	for _, d := range dates {
		summaries = append(summaries, reduceDay(d, groups[d]))
	}
	return summaries
}

// reduceDay builds the summary for one date. A date with heart rate readings
// but no resting/HRV readings leaves those fields nil, never zero.
func reduceDay(date string, day []models.CardiacMeasurement) models.DailyCardiacSummary {
	summary := models.DailyCardiacSummary{Date: date}
	var hrSum, hrMin, hrMax float64

	for _, m := range day {
		switch m.Kind {
		case models.KindHeartRate:
			if summary.HRCount == 0 {
				hrMin, hrMax = m.Value, m.Value
			} else {
				if m.Value < hrMin {
					hrMin = m.Value
				}
				if m.Value > hrMax {
					hrMax = m.Value
				}
			}
			hrSum += m.Value
			summary.HRCount++
		case models.KindRestingHeartRate:
			v := m.Value
			summary.RestingHR = &v
		case models.KindHRV:
			v := m.Value
			summary.HRV = &v
		}
	}

	if summary.HRCount > 0 {
		avg := round1(hrSum / float64(summary.HRCount))
		lo := round1(hrMin)
		hi := round1(hrMax)
		summary.HRAvg = &avg
		summary.HRMin = &lo
		summary.HRMax = &hi
	}
	return summary
}
