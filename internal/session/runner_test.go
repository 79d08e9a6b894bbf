package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/vocard/internal/domain"
)

type recordedReview struct {
	cardID    string
	rating    int
	isCorrect bool
}

type fakeReviewer struct {
	reviews []recordedReview
	err     error
}

func (f *fakeReviewer) ReviewCard(deckID, cardID string, rating int, isCorrect bool) (domain.Card, error) {
	if f.err != nil {
		return domain.Card{}, f.err
	}
	f.reviews = append(f.reviews, recordedReview{cardID: cardID, rating: rating, isCorrect: isCorrect})
	return domain.Card{ID: cardID}, nil
}

func testDeck(now time.Time) domain.Deck {
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 5)
	return domain.Deck{
		ID:   "d1",
		Name: "Spanish Basics",
		Cards: []domain.Card{
			{ID: "due1", Front: "perro", NextReviewDate: past, ReviewCount: 2},
			{ID: "fresh", Front: "gato", NextReviewDate: future, ReviewCount: 0},
			{ID: "later", Front: "vaca", NextReviewDate: future, ReviewCount: 1},
		},
	}
}

func fixedRunner(reviewer Reviewer, prompter Prompter, now time.Time) *Runner {
	r := NewRunner(reviewer, prompter)
	r.now = func() time.Time { return now }
	r.shuffle = func(n int, swap func(i, j int)) {} // deterministic order in tests
	return r
}

func TestSelectCardsPrefersDue(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	r := fixedRunner(&fakeReviewer{}, nil, now)

	cards := r.SelectCards(testDeck(now), true)
	require.Len(t, cards, 1)
	assert.Equal(t, "due1", cards[0].ID, "due cards win even when new cards exist")
}

func TestSelectCardsFallsBackToNew(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	deck := testDeck(now)
	deck.Cards[0].NextReviewDate = now.AddDate(0, 0, 3) // nothing due

	r := fixedRunner(&fakeReviewer{}, nil, now)

	cards := r.SelectCards(deck, true)
	require.Len(t, cards, 1)
	assert.Equal(t, "fresh", cards[0].ID)

	assert.Nil(t, r.SelectCards(deck, false), "new cards need explicit opt-in")
}

func TestRunReviewsEveryCard(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	reviewer := &fakeReviewer{}
	ratings := map[string]int{"due1": 4, "later": 2}
	prompter := PrompterFunc(func(card domain.Card) (int, error) {
		return ratings[card.ID], nil
	})
	r := fixedRunner(reviewer, prompter, now)

	deck := testDeck(now)
	cards := []domain.Card{deck.Cards[0], deck.Cards[2]}

	sess, err := r.Run(deck, cards)
	require.NoError(t, err)

	require.Len(t, reviewer.reviews, 2)
	assert.Equal(t, recordedReview{cardID: "due1", rating: 4, isCorrect: true}, reviewer.reviews[0])
	assert.Equal(t, recordedReview{cardID: "later", rating: 2, isCorrect: false}, reviewer.reviews[1])

	assert.Equal(t, 2, sess.CardsReviewed)
	assert.Equal(t, 1, sess.CorrectResponses)
	assert.InDelta(t, 50.0, sess.AccuracyPercentage(), 0.001)
	require.NotNil(t, sess.EndTime)
}

func TestRunEmptySession(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	r := fixedRunner(&fakeReviewer{}, PrompterFunc(func(domain.Card) (int, error) {
		t.Fatal("prompter must not be called with no cards")
		return 0, nil
	}), now)

	sess, err := r.Run(testDeck(now), nil)
	require.NoError(t, err)
	assert.Zero(t, sess.CardsReviewed)
	assert.Zero(t, sess.AccuracyPercentage(), "empty sessions report 0%, not an error")
}

func TestRunStopsOnReviewError(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	reviewer := &fakeReviewer{err: errors.New("gone")}
	r := fixedRunner(reviewer, PrompterFunc(func(domain.Card) (int, error) { return 3, nil }), now)

	deck := testDeck(now)
	_, err := r.Run(deck, deck.Cards[:1])
	require.Error(t, err)
}

func TestRunShufflesPresentation(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	reviewer := &fakeReviewer{}
	var seen []string
	r := fixedRunner(reviewer, PrompterFunc(func(card domain.Card) (int, error) {
		seen = append(seen, card.ID)
		return 3, nil
	}), now)
	// reverse instead of the identity shuffle to prove the hook is honored
	r.shuffle = func(n int, swap func(i, j int)) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}

	deck := testDeck(now)
	_, err := r.Run(deck, deck.Cards)
	require.NoError(t, err)
	assert.Equal(t, []string{"later", "fresh", "due1"}, seen)
}
