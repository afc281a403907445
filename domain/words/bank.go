package words

// AgeGroup classifies the learner audience.
type AgeGroup string

const (
	AgeChild      AgeGroup = "child"
	AgeTeen       AgeGroup = "teen"
	AgeYoungAdult AgeGroup = "young_adult"
	AgeAdult      AgeGroup = "adult"
	AgeSenior     AgeGroup = "senior"
)

// Valid reports whether the age group is one of the known values.
func (a AgeGroup) Valid() bool {
	switch a {
	case AgeChild, AgeTeen, AgeYoungAdult, AgeAdult, AgeSenior:
		return true
	}
	return false
}

// DifficultyRange is an inclusive [Low, High] band of difficulty tiers.
type DifficultyRange struct {
	Low  int
	High int
}

// Contains reports whether d falls inside the range.
func (r DifficultyRange) Contains(d int) bool {
	return d >= r.Low && d <= r.High
}

var difficultyByAge = map[AgeGroup]DifficultyRange{
	AgeChild:      {Low: 1, High: 2},
	AgeTeen:       {Low: 2, High: 3},
	AgeYoungAdult: {Low: 3, High: 4},
	AgeAdult:      {Low: 4, High: 5},
	AgeSenior:     {Low: 3, High: 5},
}

// DefaultDifficultyRange applies when a profile carries an unknown age group.
var DefaultDifficultyRange = DifficultyRange{Low: 3, High: 4}

// DifficultyRangeFor maps an age group to its allowed difficulty band.
func DifficultyRangeFor(age AgeGroup) DifficultyRange {
	if r, ok := difficultyByAge[age]; ok {
		return r
	}
	return DefaultDifficultyRange
}

// BankEntry is a pre-authored word bank item. The bank is read-only to the
// generation core; entries are created by the enrichment pipeline.
type BankEntry struct {
	WordID        string     `json:"wordId"`
	Word          string     `json:"word"`
	Definition    string     `json:"definition"`
	PartOfSpeech  string     `json:"partOfSpeech"`
	Pronunciation string     `json:"pronunciation"`
	Syllables     string     `json:"syllables"`
	Difficulty    int        `json:"difficulty"`
	Examples      []string   `json:"examples"`
	Synonyms      []string   `json:"synonyms"`
	Antonyms      []string   `json:"antonyms"`
	AgeGroups     []AgeGroup `json:"ageGroups"`
	Category      string     `json:"category"`
	AudioURL      string     `json:"audioUrl"`
	ImageURL      string     `json:"imageUrl"`
}

// FallbackEntry returns the fixed entry served when neither AI generation
// nor the bank yields a candidate. The user always receives something.
func FallbackEntry() BankEntry {
	return BankEntry{
		WordID:        "default-serendipity",
		Word:          "serendipity",
		Definition:    "The occurrence and development of events by chance in a happy or beneficial way",
		PartOfSpeech:  "noun",
		Pronunciation: "/ˌserənˈdipədē/",
		Syllables:     "ser-en-dip-i-ty",
		Difficulty:    3,
		Examples: []string{
			"Finding that book was pure serendipity.",
			"Their meeting was a fortunate serendipity.",
			"It was serendipity that we bumped into each other.",
		},
		Synonyms:  []string{"fortune", "luck", "chance"},
		Antonyms:  []string{"misfortune", "bad luck"},
		AgeGroups: []AgeGroup{AgeChild, AgeTeen, AgeYoungAdult, AgeAdult, AgeSenior},
	}
}

// AgeGroupsForDifficulty maps a difficulty tier to the audiences it suits.
// Used by the enrichment pipeline when tagging new bank entries.
func AgeGroupsForDifficulty(difficulty int) []AgeGroup {
	switch difficulty {
	case 1:
		return []AgeGroup{AgeChild, AgeTeen, AgeYoungAdult, AgeAdult, AgeSenior}
	case 2:
		return []AgeGroup{AgeTeen, AgeYoungAdult, AgeAdult, AgeSenior}
	case 3:
		return []AgeGroup{AgeYoungAdult, AgeAdult, AgeSenior}
	case 4, 5:
		return []AgeGroup{AgeAdult, AgeSenior}
	}
	return []AgeGroup{AgeAdult}
}
