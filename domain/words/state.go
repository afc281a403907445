package words

// GenerationState is the orchestrator's position in the per-(user, date)
// lifecycle. The state is derived from what is stored and which date is
// requested, and it alone decides whether generation runs.
type GenerationState int

const (
	// StateNoRecord means no word exists yet for the requested date.
	StateNoRecord GenerationState = iota

	// StateStored means a word exists and is final for this request.
	StateStored

	// StateSkippedToday means today's word was skipped and must be
	// regenerated, overwriting the same (user, date) key.
	StateSkippedToday

	// StatePastAbsent means a past date was requested and nothing was ever
	// stored for it. History is never backfilled.
	StatePastAbsent
)

func (s GenerationState) String() string {
	switch s {
	case StateNoRecord:
		return "NoRecord"
	case StateStored:
		return "Stored"
	case StateSkippedToday:
		return "SkippedToday"
	case StatePastAbsent:
		return "PastAbsent"
	}
	return "Unknown"
}

// ClassifyRequest derives the generation state for a request. existing is
// nil when no record is stored for (user, date); isToday reports whether the
// requested date is the caller's current UTC date.
func ClassifyRequest(existing *WordRecord, isToday bool) GenerationState {
	if existing == nil {
		if isToday {
			return StateNoRecord
		}
		return StatePastAbsent
	}
	if isToday && existing.IsSkipped() {
		return StateSkippedToday
	}
	return StateStored
}

// NeedsGeneration reports whether the state requires producing a new word.
func (s GenerationState) NeedsGeneration() bool {
	return s == StateNoRecord || s == StateSkippedToday
}
