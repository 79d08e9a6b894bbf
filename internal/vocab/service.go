// Package vocab exposes the operations that mutate the deck collection.
// It is the only place deck state changes: the UI layers, the session
// runner and the web handlers all go through a Service.
package vocab

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/conorfennell/vocard/internal/domain"
	"github.com/conorfennell/vocard/internal/history"
	"github.com/conorfennell/vocard/internal/scheduler"
)

// DeckStore persists the full deck collection.
type DeckStore interface {
	Load() ([]domain.Deck, error)
	Save(decks []domain.Deck) error
}

// ReviewLogger records individual reviews for reporting. The review log is
// best effort: logging failures never fail a review.
type ReviewLogger interface {
	LogReview(r history.Review) error
}

// Service owns the in-memory deck collection and writes it through the
// store after every mutation. Save failures are logged and swallowed; the
// in-memory state stays authoritative for the life of the process.
type Service struct {
	mu       sync.Mutex
	decks    []domain.Deck
	store    DeckStore
	log      ReviewLogger
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithReviewLogger attaches a review log.
func WithReviewLogger(log ReviewLogger) Option {
	return func(s *Service) { s.log = log }
}

// New loads the collection from the store and returns a ready service.
// A corrupt document is reported, then the service starts with an empty
// collection rather than failing.
func New(store DeckStore, logger *slog.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		store:    store,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	decks, err := store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptData) {
			return nil, err
		}
		logger.Error("deck document is corrupt, starting with an empty collection", "error", err)
		decks = nil
	}
	s.decks = decks
	return s, nil
}

// Decks returns a copy of the current deck collection.
func (s *Service) Decks() []domain.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyDecks(s.decks)
}

// Deck returns a copy of one deck by id.
func (s *Service) Deck(deckID string) (domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.deckByID(deckID)
	if d == nil {
		return domain.Deck{}, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}
	return copyDeck(*d), nil
}

// NewDeck is the validated input for CreateDeck.
type NewDeck struct {
	Name           string `validate:"required"`
	TargetLanguage string `validate:"required"`
	NativeLanguage string `validate:"required"`
}

// CreateDeck appends a new empty deck and saves the collection.
func (s *Service) CreateDeck(input NewDeck) (domain.Deck, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Deck{}, fmt.Errorf("create deck: %w: %v", domain.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck := domain.Deck{
		ID:             uuid.NewString(),
		Name:           input.Name,
		TargetLanguage: input.TargetLanguage,
		NativeLanguage: input.NativeLanguage,
		CreatedAt:      s.now(),
	}
	s.decks = append(s.decks, deck)
	s.save()
	return copyDeck(deck), nil
}

// NewCard is the validated input for AddCard. A zero Difficulty means the
// default of 3.
type NewCard struct {
	Front      string `validate:"required"`
	Back       string `validate:"required"`
	Difficulty int    `validate:"omitempty,min=1,max=5"`
	Notes      string
}

// AddCard appends a card to a deck and saves the collection. The card
// starts unreviewed and immediately due.
func (s *Service) AddCard(deckID string, input NewCard) (domain.Card, error) {
	if input.Difficulty == 0 {
		input.Difficulty = 3
	}
	if err := s.validate.Struct(input); err != nil {
		return domain.Card{}, fmt.Errorf("add card: %w: %v", domain.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.deckByID(deckID)
	if deck == nil {
		return domain.Card{}, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}

	card := domain.Card{
		ID:             uuid.NewString(),
		Front:          input.Front,
		Back:           input.Back,
		Difficulty:     input.Difficulty,
		NextReviewDate: s.now(),
		Notes:          input.Notes,
	}
	deck.Cards = append(deck.Cards, card)
	s.save()
	return card, nil
}

// DeleteDeck removes a deck by id and saves the collection.
func (s *Service) DeleteDeck(deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.decks {
		if s.decks[i].ID == deckID {
			s.decks = append(s.decks[:i], s.decks[i+1:]...)
			s.save()
			return nil
		}
	}
	return fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
}

// DeleteCard removes one card from a deck and saves the collection.
func (s *Service) DeleteCard(deckID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.deckByID(deckID)
	if deck == nil {
		return fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}
	for i := range deck.Cards {
		if deck.Cards[i].ID == cardID {
			deck.Cards = append(deck.Cards[:i], deck.Cards[i+1:]...)
			s.save()
			return nil
		}
	}
	return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
}

// ReviewCard applies one review outcome to a card and saves the collection.
//
// rating is the 0-5 recall quality; isCorrect is supplied separately by the
// caller (the bundled UIs derive it as rating >= 3, but the two inputs stay
// independent at this boundary). Difficulty drifts before the next review
// date is computed, so the schedule sees the card's new difficulty; the
// review count and last-reviewed time it sees are still pre-review, which
// is what makes the first-review intervals come out right.
func (s *Service) ReviewCard(deckID, cardID string, rating int, isCorrect bool) (domain.Card, error) {
	if rating < scheduler.MinRating || rating > scheduler.MaxRating {
		return domain.Card{}, fmt.Errorf("rating %d out of range [0,5]: %w", rating, domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.deckByID(deckID)
	if deck == nil {
		return domain.Card{}, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}
	card := deck.CardByID(cardID)
	if card == nil {
		return domain.Card{}, fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	now := s.now()

	switch {
	case rating <= 1:
		card.Difficulty = min(5, card.Difficulty+1)
	case rating >= 4:
		card.Difficulty = max(1, card.Difficulty-1)
	}

	card.NextReviewDate = scheduler.ComputeNextReview(*card, rating, now)

	card.ReviewCount++
	if isCorrect {
		card.ConsecutiveCorrect++
	} else {
		card.ConsecutiveCorrect = 0
	}
	reviewedAt := now
	card.LastReviewed = &reviewedAt
	deck.LastStudied = &reviewedAt

	s.save()

	if s.log != nil {
		interval := int(card.NextReviewDate.Sub(now).Hours() / 24)
		err := s.log.LogReview(history.Review{
			DeckID:       deckID,
			CardID:       cardID,
			Rating:       rating,
			Correct:      isCorrect,
			IntervalDays: interval,
			ReviewedAt:   now,
		})
		if err != nil {
			s.logger.Warn("failed to log review", "card_id", cardID, "error", err)
		}
	}

	return *card, nil
}

// save writes the collection through the store. A failed save is reported
// and the in-memory state kept; a later mutation retries the write.
// Callers hold s.mu.
func (s *Service) save() {
	if err := s.store.Save(s.decks); err != nil {
		s.logger.Warn("failed to save deck collection, keeping in-memory state", "error", err)
	}
}

func (s *Service) deckByID(id string) *domain.Deck {
	for i := range s.decks {
		if s.decks[i].ID == id {
			return &s.decks[i]
		}
	}
	return nil
}

func copyDeck(d domain.Deck) domain.Deck {
	cards := make([]domain.Card, len(d.Cards))
	copy(cards, d.Cards)
	d.Cards = cards
	return d
}

func copyDecks(decks []domain.Deck) []domain.Deck {
	out := make([]domain.Deck, len(decks))
	for i, d := range decks {
		out[i] = copyDeck(d)
	}
	return out
}
