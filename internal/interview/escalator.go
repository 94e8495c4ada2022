package interview

// MaybeEscalate advances the tier once the current tier has used up its question
// allowance. The counter of the tier being entered starts again at zero. Hard is
// terminal and keeps accumulating. It reports whether the tier changed.
func (s *State) MaybeEscalate() bool {
	current := s.Tier
	if s.QuestionsPerTier[current] < s.MaxQuestionsPerTier {
		return false
	}
	next := current.Next()
	if next == current {
		return false
	}
	s.Tier = next
	s.QuestionsPerTier[next] = 0
	return true
}
