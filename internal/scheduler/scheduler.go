// Package scheduler computes review dates with a SuperMemo-2 derived
// heuristic. Everything here is a pure function of the card's current
// state and the review rating; callers apply the result themselves.
package scheduler

import (
	"time"

	"github.com/conorfennell/vocard/internal/domain"
)

// Rating bounds for a single review. 0 is total forgetting, 5 perfect recall.
const (
	MinRating = 0
	MaxRating = 5
)

// minEase is the floor for the ease factor, as in classic SM-2.
const minEase = 1.3

// farPast stands in for a missing LastReviewed on an already-reviewed card.
// The branch is unreachable through the normal review path (a card with
// reviews always has LastReviewed set) but is kept for parity with the
// historical behavior rather than silently dropped.
const farPastYears = 10

// EaseFactor returns the growth multiplier for the given difficulty and
// rating. Easier cards and better ratings grow intervals faster; the
// result never drops below 1.3.
func EaseFactor(difficulty, rating int) float64 {
	ease := 2.5 + float64(3-difficulty)*0.1 + float64(rating-3)*0.1
	if ease < minEase {
		ease = minEase
	}
	return ease
}

// NextInterval returns the number of days until the card should next be
// seen. The result is always at least 1.
func NextInterval(card domain.Card, rating int, now time.Time) int {
	interval := rawInterval(card, rating, now)
	if interval < 1 {
		interval = 1
	}
	return interval
}

func rawInterval(card domain.Card, rating int, now time.Time) int {
	// First ever review: one day on a weak answer, two on a solid one.
	if card.ReviewCount == 0 {
		if rating <= 2 {
			return 1
		}
		return 2
	}

	// Forgot the card entirely: hard reset.
	if rating <= 1 {
		return 1
	}

	last := now.AddDate(-farPastYears, 0, 0)
	if card.LastReviewed != nil {
		last = *card.LastReviewed
	}
	elapsed := int(now.Sub(last).Hours() / 24)

	base := int(float64(elapsed) * EaseFactor(card.Difficulty, rating))
	switch {
	case rating <= 2:
		return base / 2
	case rating >= 4:
		return int(float64(base) * 1.3)
	default:
		return base
	}
}

// ComputeNextReview returns the card's next review date given a rating in
// [0,5]. The card is not mutated; its Difficulty, ReviewCount and
// LastReviewed drive the computation.
func ComputeNextReview(card domain.Card, rating int, now time.Time) time.Time {
	return now.AddDate(0, 0, NextInterval(card, rating, now))
}
