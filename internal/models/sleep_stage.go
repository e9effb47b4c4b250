package models

import "strings"

// SleepStage is the closed set of normalized sleep stages.
type SleepStage int

const (
	StageInBed SleepStage = iota
	StageAsleep
	StageAwake
	StageCore
	StageDeep
	StageREM
	// StageUnknown marks a record whose value string was not recognized.
	// Such sessions are retained for reporting but contribute to no stage
	// totals.
	StageUnknown
)

func (s SleepStage) String() string {
	switch s {
	case StageInBed:
		return "InBed"
	case StageAsleep:
		return "Asleep"
	case StageAwake:
		return "Awake"
	case StageCore:
		return "Core"
	case StageDeep:
		return "Deep"
	case StageREM:
		return "REM"
	default:
		return "Unknown"
	}
}

// sleepValuePrefix is the HealthKit category value prefix carried by every
// sleep analysis record, e.g. "HKCategoryValueSleepAnalysisAsleepDeep".
const sleepValuePrefix = "HKCategoryValueSleepAnalysis"

// sleepStageMap maps stripped, lowercased stage labels to the normalized
// stage. Newer exports use the Asleep* variants; older ones the bare names.
var sleepStageMap = map[string]SleepStage{
	"inbed":             StageInBed,
	"asleep":            StageAsleep,
	"asleepunspecified": StageAsleep,
	"awake":             StageAwake,
	"core":              StageCore,
	"asleepcore":        StageCore,
	"deep":              StageDeep,
	"asleepdeep":        StageDeep,
	"rem":               StageREM,
	"asleeprem":         StageREM,
}

// NormalizeSleepStage maps a raw sleep analysis value string to its
// normalized stage. The HealthKit prefix is stripped first, so both
// "HKCategoryValueSleepAnalysisAsleepDeep" and "AsleepDeep" resolve to
// StageDeep. Returns StageUnknown and false for unrecognized labels.
func NormalizeSleepStage(raw string) (SleepStage, bool) {
	label := strings.TrimPrefix(strings.TrimSpace(raw), sleepValuePrefix)
	if stage, ok := sleepStageMap[strings.ToLower(label)]; ok {
		return stage, true
	}
	return StageUnknown, false
}
