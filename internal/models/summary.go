package models

// DailySleepSummary aggregates all sleep sessions attributed to one night.
// Hour fields are rounded to 2 decimal places and minute fields to 1 at
// construction time; downstream consumers must not re-round.
type DailySleepSummary struct {
	Date            string  `json:"date"`
	Bedtime         string  `json:"bedtime"`   // HH:MM, earliest session start
	WakeTime        string  `json:"wake_time"` // HH:MM, latest session end
	TimeInBedHours  float64 `json:"time_in_bed_hours"`
	TotalSleepHours float64 `json:"total_sleep_hours"` // Asleep+Core+Deep+REM
	AwakeMinutes    float64 `json:"awake_minutes"`
	CoreSleepHours  float64 `json:"core_sleep_hours"`
	DeepSleepHours  float64 `json:"deep_sleep_hours"`
	REMSleepHours   float64 `json:"rem_sleep_hours"`
}

// DailyCardiacSummary aggregates the cardiac measurements of one calendar
// date. HR stats cover KindHeartRate only and are nil when no heart rate
// measurement exists for the date. RestingHR and HRV keep the value of the
// last measurement observed in input order when a date has several.
type DailyCardiacSummary struct {
	Date      string   `json:"date"`
	HRAvg     *float64 `json:"hr_avg,omitempty"`
	HRMin     *float64 `json:"hr_min,omitempty"`
	HRMax     *float64 `json:"hr_max,omitempty"`
	HRCount   int      `json:"hr_count"`
	RestingHR *float64 `json:"resting_hr,omitempty"`
	HRV       *float64 `json:"hrv_sdnn,omitempty"`
}

// CombinedRow is the outer join of one date's sleep and cardiac summaries.
// A nil side means the date had no data of that kind; the output layer
// renders nil fields as empty cells. Rows are never mutated after the merge.
type CombinedRow struct {
	Date    string               `json:"date"`
	Sleep   *DailySleepSummary   `json:"sleep,omitempty"`
	Cardiac *DailyCardiacSummary `json:"cardiac,omitempty"`
}
