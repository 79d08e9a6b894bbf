package domain

import (
	"testing"
	"time"
)

func TestDueCardCount(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	deck := Deck{
		Cards: []Card{
			{ID: "a", NextReviewDate: now.AddDate(0, 0, -1)},
			{ID: "b", NextReviewDate: now.AddDate(0, 0, 2)},
			{ID: "c", NextReviewDate: now.AddDate(0, 0, 7)},
		},
	}

	if got := deck.DueCardCount(now); got != 1 {
		t.Errorf("DueCardCount = %d, want 1", got)
	}
	if due := deck.DueCards(now); len(due) != 1 || due[0].ID != "a" {
		t.Errorf("DueCards = %v, want just card a", due)
	}
}

func TestCardDueAtExactTime(t *testing.T) {
	now := time.Now()
	card := Card{NextReviewDate: now}
	if !card.IsDue(now) {
		t.Error("a card scheduled exactly now is due")
	}
}

func TestMastered(t *testing.T) {
	deck := Deck{
		Cards: []Card{
			{ConsecutiveCorrect: 2},
			{ConsecutiveCorrect: 3},
			{ConsecutiveCorrect: 7},
		},
	}
	if got := deck.MasteredCount(); got != 2 {
		t.Errorf("MasteredCount = %d, want 2", got)
	}
}

func TestSessionAccuracy(t *testing.T) {
	var s StudySession
	if got := s.AccuracyPercentage(); got != 0 {
		t.Errorf("empty session accuracy = %f, want 0", got)
	}

	s.RecordReview(true)
	s.RecordReview(true)
	s.RecordReview(false)
	if got := s.AccuracyPercentage(); got < 66.6 || got > 66.7 {
		t.Errorf("accuracy = %f, want ~66.67", got)
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	s := StudySession{StartTime: start}
	if s.Duration() != 0 {
		t.Error("an open session has no duration yet")
	}
	s.Finish(start.Add(90 * time.Second))
	if s.Duration() != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", s.Duration())
	}
}
