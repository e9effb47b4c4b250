package pipeline

import (
	"sort"

	"github.com/claude/healthsheet/internal/models"
)

// MergeDaily outer-joins the two daily summary collections into one row per
// date, ascending. Every date present in either input appears exactly once;
// no date absent from both is fabricated. A row's missing side stays nil and
// is rendered as empty cells by the output layer.
func MergeDaily(sleep []models.DailySleepSummary, cardiac []models.DailyCardiacSummary) []models.CombinedRow {
	sleepByDate := make(map[string]models.DailySleepSummary, len(sleep))
	for _, s := range sleep {
		sleepByDate[s.Date] = s
	}
	cardiacByDate := make(map[string]models.DailyCardiacSummary, len(cardiac))
	for _, c := range cardiac {
		cardiacByDate[c.Date] = c
	}

	dateSet := make(map[string]struct{}, len(sleepByDate)+len(cardiacByDate))
	for d := range sleepByDate {
		dateSet[d] = struct{}{}
	}
	for d := range cardiacByDate {
		dateSet[d] = struct{}{}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := make([]models.CombinedRow, 0, len(dates))
	for _, d := range dates {
		row := models.CombinedRow{Date: d}
		if s, ok := sleepByDate[d]; ok {
			cp := s
			row.Sleep = &cp
		}
		if c, ok := cardiacByDate[d]; ok {
			cp := c
			row.Cardiac = &cp
		}
		rows = append(rows, row)
	}
	return rows
}
