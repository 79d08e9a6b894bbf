// Package session runs one study pass over a deck.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/conorfennell/vocard/internal/domain"
)

// Reviewer applies one review outcome; satisfied by vocab.Service.
type Reviewer interface {
	ReviewCard(deckID, cardID string, rating int, isCorrect bool) (domain.Card, error)
}

// Prompter is the UI collaborator: it shows a card and collects a 0-5
// rating. Implementations block until the user answers.
type Prompter interface {
	// Rate presents the card and returns the user's recall rating.
	Rate(card domain.Card) (rating int, err error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(card domain.Card) (int, error)

func (f PrompterFunc) Rate(card domain.Card) (int, error) { return f(card) }

// Runner drives a study session: pick the working set, shuffle it, review
// each card through the service, and tally the results.
type Runner struct {
	reviewer Reviewer
	prompter Prompter
	now      func() time.Time
	shuffle  func(n int, swap func(i, j int))
}

// NewRunner builds a runner over the given reviewer and prompter.
func NewRunner(reviewer Reviewer, prompter Prompter) *Runner {
	return &Runner{
		reviewer: reviewer,
		prompter: prompter,
		now:      time.Now,
		shuffle:  rand.Shuffle,
	}
}

// SelectCards picks the session working set from a deck snapshot: the due
// cards if any exist, otherwise (only when includeNew is set) the cards
// that have never been reviewed.
func (r *Runner) SelectCards(deck domain.Deck, includeNew bool) []domain.Card {
	due := deck.DueCards(r.now())
	if len(due) > 0 {
		return due
	}
	if includeNew {
		return deck.NewCards()
	}
	return nil
}

// Run studies every selected card once, in random order, and returns the
// finished session. Correctness is derived from the rating as rating >= 3;
// callers wanting a different policy drive the reviewer themselves.
func (r *Runner) Run(deck domain.Deck, cards []domain.Card) (*domain.StudySession, error) {
	sess := &domain.StudySession{
		DeckID:    deck.ID,
		DeckName:  deck.Name,
		StartTime: r.now(),
	}

	shuffled := make([]domain.Card, len(cards))
	copy(shuffled, cards)
	r.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, card := range shuffled {
		rating, err := r.prompter.Rate(card)
		if err != nil {
			return nil, fmt.Errorf("session: collecting rating for card %s: %w", card.ID, err)
		}
		isCorrect := rating >= 3

		if _, err := r.reviewer.ReviewCard(deck.ID, card.ID, rating, isCorrect); err != nil {
			return nil, fmt.Errorf("session: reviewing card %s: %w", card.ID, err)
		}
		sess.RecordReview(isCorrect)
	}

	sess.Finish(r.now())
	return sess, nil
}
