package pipeline

import (
	"log/slog"

	"github.com/claude/healthsheet/internal/models"
)

// Averages holds the across-period means reported after a run. Deep and REM
// averages cover only nights where the stage was recorded, so a watch that
// never reports deep sleep does not drag the mean to zero.
type Averages struct {
	NightsTracked int
	AvgSleepHours float64
	AvgDeepHours  float64
	AvgREMHours   float64
	DaysTracked   int
	AvgHeartRate  float64
	AvgRestingHR  float64
	AvgHRVSDNN    float64
}

// ComputeAverages derives the run summary from the two daily collections.
func ComputeAverages(sleep []models.DailySleepSummary, cardiac []models.DailyCardiacSummary) Averages {
	a := Averages{NightsTracked: len(sleep), DaysTracked: len(cardiac)}

	var sleepSum, deepSum, remSum float64
	var deepN, remN int
	for _, s := range sleep {
		sleepSum += s.TotalSleepHours
		if s.DeepSleepHours > 0 {
			deepSum += s.DeepSleepHours
			deepN++
		}
		if s.REMSleepHours > 0 {
			remSum += s.REMSleepHours
			remN++
		}
	}
	if len(sleep) > 0 {
		a.AvgSleepHours = sleepSum / float64(len(sleep))
	}
	if deepN > 0 {
		a.AvgDeepHours = deepSum / float64(deepN)
	}
	if remN > 0 {
		a.AvgREMHours = remSum / float64(remN)
	}

	var hrSum, rhrSum, hrvSum float64
	var hrN, rhrN, hrvN int
	for _, c := range cardiac {
		if c.HRAvg != nil {
			hrSum += *c.HRAvg
			hrN++
		}
		if c.RestingHR != nil {
			rhrSum += *c.RestingHR
			rhrN++
		}
		if c.HRV != nil {
			hrvSum += *c.HRV
			hrvN++
		}
	}
	if hrN > 0 {
		a.AvgHeartRate = hrSum / float64(hrN)
	}
	if rhrN > 0 {
		a.AvgRestingHR = rhrSum / float64(rhrN)
	}
	if hrvN > 0 {
		a.AvgHRVSDNN = hrvSum / float64(hrvN)
	}
	return a
}

// LogAverages emits the run summary the way the import stats are reported.
func LogAverages(log *slog.Logger, a Averages) {
	log.Info("sleep summary",
		"nights_tracked", a.NightsTracked,
		"avg_sleep_hours", round2(a.AvgSleepHours),
		"avg_deep_hours", round2(a.AvgDeepHours),
		"avg_rem_hours", round2(a.AvgREMHours),
	)
	log.Info("heart summary",
		"days_tracked", a.DaysTracked,
		"avg_heart_rate", round1(a.AvgHeartRate),
		"avg_resting_hr", round1(a.AvgRestingHR),
		"avg_hrv_sdnn", round1(a.AvgHRVSDNN),
	)
}
