// Package web serves a small local htmx UI over the deck collection.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/vocard/internal/domain"
	"github.com/conorfennell/vocard/internal/vocab"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	svc       *vocab.Service
	router    *http.ServeMux
	templates *template.Template
}

// NewServer creates and configures a new server.
func NewServer(svc *vocab.Service) *Server {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		svc:       svc,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleIndex())
	s.router.HandleFunc("/decks/", s.handleGetDeck())
	s.router.HandleFunc("/review/next", s.handleGetNextReview())
	s.router.HandleFunc("/review/answer/", s.handleShowAnswer())
	s.router.HandleFunc("/review/", s.handlePostReview())
}

// deckView is what the deck templates render.
type deckView struct {
	domain.Deck
	DueCount      int
	MasteredCount int
}

func (s *Server) deckViews() []deckView {
	now := time.Now()
	var views []deckView
	for _, d := range s.svc.Decks() {
		views = append(views, deckView{
			Deck:          d,
			DueCount:      d.DueCardCount(now),
			MasteredCount: d.MasteredCount(),
		})
	}
	return views
}

// handleIndex renders the deck list with due counts.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data := map[string]interface{}{
			"Decks": s.deckViews(),
		}
		if err := s.templates.ExecuteTemplate(w, "index", data); err != nil {
			log.Printf("Error rendering index: %v", err)
		}
	}
}

// handleGetDeck renders one deck with its study entry point.
func (s *Server) handleGetDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/decks/")
		deck, err := s.svc.Deck(id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		now := time.Now()
		data := map[string]interface{}{
			"Deck":          deck,
			"DueCount":      deck.DueCardCount(now),
			"MasteredCount": deck.MasteredCount(),
			"HasDueCards":   deck.DueCardCount(now) > 0,
		}
		if err := s.templates.ExecuteTemplate(w, "deck", data); err != nil {
			log.Printf("Error rendering deck %s: %v", id, err)
		}
	}
}

// handleGetNextReview renders the front of the next due card in a deck.
func (s *Server) handleGetNextReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deckID := r.URL.Query().Get("deck")
		deck, err := s.svc.Deck(deckID)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		due := deck.DueCards(time.Now())
		if len(due) == 0 {
			data := map[string]interface{}{"Deck": deck}
			if err := s.templates.ExecuteTemplate(w, "review_done", data); err != nil {
				log.Printf("Error rendering review_done: %v", err)
			}
			return
		}
		data := map[string]interface{}{
			"Deck":      deck,
			"Card":      due[0],
			"Remaining": len(due),
		}
		if err := s.templates.ExecuteTemplate(w, "card_front", data); err != nil {
			log.Printf("Error rendering card_front: %v", err)
		}
	}
}

// handleShowAnswer renders the back of a card with the rating buttons.
func (s *Server) handleShowAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := strings.TrimPrefix(r.URL.Path, "/review/answer/")
		deckID := r.URL.Query().Get("deck")
		deck, err := s.svc.Deck(deckID)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		card := deck.CardByID(cardID)
		if card == nil {
			http.NotFound(w, r)
			return
		}
		data := map[string]interface{}{
			"Deck": deck,
			"Card": *card,
		}
		if err := s.templates.ExecuteTemplate(w, "card_back", data); err != nil {
			log.Printf("Error rendering card_back: %v", err)
		}
	}
}

// handlePostReview processes a rating and renders the next card.
func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		cardID := strings.TrimPrefix(r.URL.Path, "/review/")
		deckID := r.PostFormValue("deck")
		rating, err := strconv.Atoi(r.PostFormValue("rating"))
		if err != nil {
			http.Error(w, "Invalid rating", http.StatusBadRequest)
			return
		}

		// Same policy as the terminal session: 3 and up counts as correct.
		_, err = s.svc.ReviewCard(deckID, cardID, rating, rating >= 3)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrValidation):
				http.Error(w, "Invalid rating", http.StatusBadRequest)
			default:
				log.Printf("Error reviewing card %s: %v", cardID, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		// After review, show the next card
		q := r.URL.Query()
		q.Set("deck", deckID)
		r.URL.RawQuery = q.Encode()
		s.handleGetNextReview()(w, r)
	}
}
