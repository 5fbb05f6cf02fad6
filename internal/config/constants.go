package config

const (
	// DefaultDatabasePath is the default path for the run-history database
	DefaultDatabasePath = "./re-kindle.db"

	// DefaultFuzzyThreshold is the minimum similarity a fuzzy window must
	// reach to be accepted as a match
	DefaultFuzzyThreshold = 0.85

	// DefaultFuzzyWindowBudget caps the number of candidate windows one
	// fuzzy scan may score before degrading to not-found
	DefaultFuzzyWindowBudget = 200_000
)
