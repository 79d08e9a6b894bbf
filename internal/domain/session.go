package domain

import "time"

// StudySession tracks one study pass over a deck. Sessions are ephemeral:
// they are never persisted, only summarized at the end of a run.
type StudySession struct {
	DeckID           string
	DeckName         string
	StartTime        time.Time
	EndTime          *time.Time
	CardsReviewed    int
	CorrectResponses int
}

// RecordReview updates the session counters for one reviewed card.
func (s *StudySession) RecordReview(correct bool) {
	s.CardsReviewed++
	if correct {
		s.CorrectResponses++
	}
}

// Finish marks the session complete at the given time.
func (s *StudySession) Finish(now time.Time) {
	t := now
	s.EndTime = &t
}

// Duration returns the session length, or zero if the session is still open.
func (s *StudySession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// AccuracyPercentage returns correct/reviewed as a percentage.
// A session with no reviews reports 0, not an error.
func (s *StudySession) AccuracyPercentage() float64 {
	if s.CardsReviewed == 0 {
		return 0
	}
	return float64(s.CorrectResponses) / float64(s.CardsReviewed) * 100
}
