package domain

import "time"

// Card is a single vocabulary item together with its review state.
// Front holds the target-language text, Back the native-language text.
// Front, Back and ID never change after creation; the remaining fields
// are mutated by reviews.
type Card struct {
	ID                 string     `json:"id"`
	Front              string     `json:"front"`
	Back               string     `json:"back"`
	Difficulty         int        `json:"difficulty"` // 1 (easiest) to 5 (hardest)
	NextReviewDate     time.Time  `json:"nextReviewDate"`
	ReviewCount        int        `json:"reviewCount"`
	ConsecutiveCorrect int        `json:"consecutiveCorrect"`
	LastReviewed       *time.Time `json:"lastReviewed,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// MasteredThreshold is the consecutive-correct count at which a card is
// reported as mastered. Reporting only, never consulted by scheduling.
const MasteredThreshold = 3

// IsDue reports whether the card should be shown at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReviewDate.After(now)
}

// IsMastered reports whether the card has reached the mastered threshold.
func (c *Card) IsMastered() bool {
	return c.ConsecutiveCorrect >= MasteredThreshold
}

// Deck is a named, ordered collection of cards for one language pair.
type Deck struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TargetLanguage string     `json:"targetLanguage"`
	NativeLanguage string     `json:"nativeLanguage"`
	Cards          []Card     `json:"cards"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastStudied    *time.Time `json:"lastStudied,omitempty"`
}

// CardByID returns a pointer into the deck's card slice, or nil if the id
// is unknown. The pointer is only valid until the slice is next modified,
// so callers look cards up fresh on every operation instead of caching it.
func (d *Deck) CardByID(id string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// DueCards returns the cards due at the given time, in deck order.
func (d *Deck) DueCards(now time.Time) []Card {
	var due []Card
	for _, c := range d.Cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	return due
}

// DueCardCount counts the cards due at the given time.
func (d *Deck) DueCardCount(now time.Time) int {
	n := 0
	for i := range d.Cards {
		if d.Cards[i].IsDue(now) {
			n++
		}
	}
	return n
}

// NewCards returns the cards that have never been reviewed, in deck order.
func (d *Deck) NewCards() []Card {
	var fresh []Card
	for _, c := range d.Cards {
		if c.ReviewCount == 0 {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// MasteredCount counts cards at or past the mastered threshold.
func (d *Deck) MasteredCount() int {
	n := 0
	for i := range d.Cards {
		if d.Cards[i].IsMastered() {
			n++
		}
	}
	return n
}
