// Package cli is the interactive terminal front end. It owns no deck
// logic: every mutation goes through the vocab service and every study
// pass through the session runner.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/vocard/internal/domain"
	"github.com/conorfennell/vocard/internal/history"
	"github.com/conorfennell/vocard/internal/importer"
	"github.com/conorfennell/vocard/internal/scheduler"
	"github.com/conorfennell/vocard/internal/session"
	"github.com/conorfennell/vocard/internal/vocab"
)

// Menu drives the interactive loop.
type Menu struct {
	svc      *vocab.Service
	imp      *importer.Importer
	db       *history.DB
	reposDir string
	in       *bufio.Reader
	out      io.Writer
}

// NewMenu builds the menu over the given collaborators. db may be nil when
// the history database could not be opened; stats then fall back to the
// in-memory collection only.
func NewMenu(svc *vocab.Service, imp *importer.Importer, db *history.DB, reposDir string, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		svc:      svc,
		imp:      imp,
		db:       db,
		reposDir: reposDir,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run loops until the user quits or input ends.
func (m *Menu) Run() error {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "vocard")
		fmt.Fprintln(m.out, " 1) list decks")
		fmt.Fprintln(m.out, " 2) create deck")
		fmt.Fprintln(m.out, " 3) add card")
		fmt.Fprintln(m.out, " 4) study")
		fmt.Fprintln(m.out, " 5) deck stats")
		fmt.Fprintln(m.out, " 6) import deck files from a directory")
		fmt.Fprintln(m.out, " 7) sync sources")
		fmt.Fprintln(m.out, " 8) delete deck")
		fmt.Fprintln(m.out, " q) quit")

		choice, err := m.prompt("> ")
		if err != nil {
			return nil // EOF ends the program cleanly
		}

		switch choice {
		case "1":
			m.listDecks()
		case "2":
			m.createDeck()
		case "3":
			m.addCard()
		case "4":
			m.study()
		case "5":
			m.deckStats()
		case "6":
			m.importDir()
		case "7":
			m.syncSources()
		case "8":
			m.deleteDeck()
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(m.out, "unknown choice %q\n", choice)
		}
	}
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) listDecks() {
	decks := m.svc.Decks()
	if len(decks) == 0 {
		fmt.Fprintln(m.out, "no decks yet")
		return
	}
	now := time.Now()
	for i, d := range decks {
		fmt.Fprintf(m.out, "%2d. %s (%s -> %s): %d cards, %d due\n",
			i+1, d.Name, d.TargetLanguage, d.NativeLanguage, len(d.Cards), d.DueCardCount(now))
	}
}

// chooseDeck lists the decks and returns the one the user picks.
func (m *Menu) chooseDeck() (domain.Deck, bool) {
	decks := m.svc.Decks()
	if len(decks) == 0 {
		fmt.Fprintln(m.out, "no decks yet")
		return domain.Deck{}, false
	}
	m.listDecks()
	answer, err := m.prompt("deck number: ")
	if err != nil {
		return domain.Deck{}, false
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(decks) {
		fmt.Fprintln(m.out, "not a valid deck number")
		return domain.Deck{}, false
	}
	return decks[n-1], true
}

func (m *Menu) createDeck() {
	name, err := m.prompt("deck name: ")
	if err != nil {
		return
	}
	target, err := m.prompt("target language: ")
	if err != nil {
		return
	}
	native, err := m.prompt("native language: ")
	if err != nil {
		return
	}

	deck, err := m.svc.CreateDeck(vocab.NewDeck{Name: name, TargetLanguage: target, NativeLanguage: native})
	if err != nil {
		fmt.Fprintf(m.out, "could not create deck: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "created %q\n", deck.Name)
}

func (m *Menu) addCard() {
	deck, ok := m.chooseDeck()
	if !ok {
		return
	}
	front, err := m.prompt(fmt.Sprintf("front (%s): ", deck.TargetLanguage))
	if err != nil {
		return
	}
	back, err := m.prompt(fmt.Sprintf("back (%s): ", deck.NativeLanguage))
	if err != nil {
		return
	}
	notes, err := m.prompt("notes (optional): ")
	if err != nil {
		return
	}
	difficulty := 0 // service default
	if answer, err := m.prompt("difficulty 1-5 (enter for 3): "); err == nil && answer != "" {
		difficulty, _ = strconv.Atoi(answer)
	}

	_, err = m.svc.AddCard(deck.ID, vocab.NewCard{Front: front, Back: back, Notes: notes, Difficulty: difficulty})
	if err != nil {
		fmt.Fprintf(m.out, "could not add card: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "card added")
}

func (m *Menu) study() {
	deck, ok := m.chooseDeck()
	if !ok {
		return
	}

	runner := session.NewRunner(m.svc, session.PrompterFunc(m.rateCard))
	cards := runner.SelectCards(deck, false)
	if len(cards) == 0 {
		answer, err := m.prompt("nothing due; study new cards instead? (y/n): ")
		if err != nil || answer != "y" {
			return
		}
		cards = runner.SelectCards(deck, true)
	}
	if len(cards) == 0 {
		fmt.Fprintln(m.out, "nothing to study in this deck")
		return
	}

	sess, err := runner.Run(deck, cards)
	if err != nil {
		fmt.Fprintf(m.out, "session ended early: %v\n", err)
		return
	}

	fmt.Fprintf(m.out, "\nsession done: %d reviewed, %d correct (%.0f%%) in %s\n",
		sess.CardsReviewed, sess.CorrectResponses, sess.AccuracyPercentage(),
		sess.Duration().Round(time.Second))
}

// rateCard is the session Prompter: front, pause, back, rating.
func (m *Menu) rateCard(card domain.Card) (int, error) {
	fmt.Fprintf(m.out, "\n  %s\n", card.Front)
	if _, err := m.prompt("  (enter to reveal) "); err != nil {
		return 0, err
	}
	fmt.Fprintf(m.out, "  %s\n", card.Back)
	if card.Notes != "" {
		fmt.Fprintf(m.out, "  note: %s\n", card.Notes)
	}

	for {
		answer, err := m.prompt("  rating 0-5: ")
		if err != nil {
			return 0, err
		}
		rating, err := strconv.Atoi(answer)
		if err == nil && rating >= scheduler.MinRating && rating <= scheduler.MaxRating {
			return rating, nil
		}
		fmt.Fprintln(m.out, "  please answer with a number from 0 (blank) to 5 (perfect)")
	}
}

func (m *Menu) deckStats() {
	deck, ok := m.chooseDeck()
	if !ok {
		return
	}
	now := time.Now()
	fmt.Fprintf(m.out, "%s: %d cards, %d due, %d mastered\n",
		deck.Name, len(deck.Cards), deck.DueCardCount(now), deck.MasteredCount())
	if deck.LastStudied != nil {
		fmt.Fprintf(m.out, "last studied %s\n", deck.LastStudied.Format("2006-01-02 15:04"))
	}

	if m.db != nil {
		total, correct, err := m.db.DeckAccuracy(deck.ID)
		if err != nil {
			fmt.Fprintf(m.out, "could not read review history: %v\n", err)
			return
		}
		if total > 0 {
			fmt.Fprintf(m.out, "all-time: %d reviews, %.0f%% correct\n",
				total, float64(correct)/float64(total)*100)
		}
	}
}

func (m *Menu) importDir() {
	dir, err := m.prompt("directory of .deck files: ")
	if err != nil || dir == "" {
		return
	}
	res, err := m.imp.ImportDir(dir)
	if err != nil {
		fmt.Fprintf(m.out, "import failed: %v\n", err)
		return
	}
	m.reportImport(res)
}

func (m *Menu) syncSources() {
	if m.db == nil {
		fmt.Fprintln(m.out, "sources need the history database, which is unavailable")
		return
	}
	res, err := m.imp.SyncSources(m.reposDir)
	if err != nil {
		fmt.Fprintf(m.out, "sync failed: %v\n", err)
		return
	}
	m.reportImport(res)
}

func (m *Menu) reportImport(res *importer.Result) {
	fmt.Fprintf(m.out, "%d decks created, %d cards added, %d duplicates skipped\n",
		res.DecksCreated, res.CardsAdded, res.CardsSkipped)
	for _, e := range res.Errors {
		fmt.Fprintf(m.out, "- %v\n", e)
	}
}

func (m *Menu) deleteDeck() {
	deck, ok := m.chooseDeck()
	if !ok {
		return
	}
	answer, err := m.prompt(fmt.Sprintf("delete %q and its %d cards? (y/n): ", deck.Name, len(deck.Cards)))
	if err != nil || answer != "y" {
		return
	}
	if err := m.svc.DeleteDeck(deck.ID); err != nil {
		fmt.Fprintf(m.out, "could not delete deck: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "deck deleted")
}
