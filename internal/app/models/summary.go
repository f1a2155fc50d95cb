package models

// UnknownIntake groups records that have no intake label
const UnknownIntake = "Unknown"

// CGPA band labels
const (
	BandTwo       = "2.0-2.49"
	BandTwoHalf   = "2.5-2.99"
	BandThree     = "3.0-3.49"
	BandThreeHalf = "3.5-4.0"
)

// Gender labels counted in intake summaries
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// SummaryLevels are the levels tracked in the gender x level cross-tabulation
var SummaryLevels = []string{"P1", "P2", "P3"}

// SummaryGenders are the gender labels counted in intake summaries
var SummaryGenders = []string{GenderMale, GenderFemale}

// IntakeSummary is the aggregate for one intake cohort
type IntakeSummary struct {
	Total       int                       `json:"total"`
	CGPARanges  map[string]int            `json:"cgpaRanges"`
	DeanList    int                       `json:"deanList"`
	Gender      map[string]int            `json:"gender"`
	Nationality map[string]int            `json:"nationality"`
	LevelGender map[string]map[string]int `json:"levelGender"`
}

// NewIntakeSummary returns a summary with every fixed key present and zeroed
func NewIntakeSummary() *IntakeSummary {
	s := &IntakeSummary{
		CGPARanges: map[string]int{
			BandTwo:       0,
			BandTwoHalf:   0,
			BandThree:     0,
			BandThreeHalf: 0,
		},
		Gender:      make(map[string]int, len(SummaryGenders)),
		Nationality: map[string]int{},
		LevelGender: make(map[string]map[string]int, len(SummaryGenders)),
	}
	for _, g := range SummaryGenders {
		s.Gender[g] = 0
		levels := make(map[string]int, len(SummaryLevels))
		for _, l := range SummaryLevels {
			levels[l] = 0
		}
		s.LevelGender[g] = levels
	}
	return s
}
