// Package importer reconciles deck files from registered sources into the
// deck collection.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/vocard/internal/cardhash"
	"github.com/conorfennell/vocard/internal/domain"
	"github.com/conorfennell/vocard/internal/gitsource"
	"github.com/conorfennell/vocard/internal/history"
	"github.com/conorfennell/vocard/internal/parser"
	"github.com/conorfennell/vocard/internal/vocab"
)

// Importer walks deck files and feeds new content through the service.
// Cards already present in a deck (by normalized content hash) are skipped,
// so re-importing a source is harmless.
type Importer struct {
	svc    *vocab.Service
	db     *history.DB
	logger *slog.Logger
}

// New builds an importer. db may be nil when sources are not used (one-shot
// directory imports).
func New(svc *vocab.Service, db *history.DB, logger *slog.Logger) *Importer {
	return &Importer{svc: svc, db: db, logger: logger}
}

// Result summarizes one import pass.
type Result struct {
	DecksCreated int
	CardsAdded   int
	CardsSkipped int
	Errors       []error
}

// ImportDir imports every .deck file under dir.
func (im *Importer) ImportDir(dir string) (*Result, error) {
	res := &Result{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".deck") {
			if fileErr := im.importFile(path, res); fileErr != nil {
				res.Errors = append(res.Errors, fmt.Errorf("importing %s: %w", path, fileErr))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return res, nil
}

func (im *Importer) importFile(path string, res *Result) error {
	file, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	deck, created, err := im.targetDeck(file)
	if err != nil {
		return err
	}
	if created {
		res.DecksCreated++
	}

	existing := make(map[string]bool)
	for _, c := range deck.Cards {
		existing[cardhash.Hash(c.Front, c.Back)] = true
	}

	for _, entry := range file.Cards {
		hash := cardhash.Hash(entry.Front, entry.Back)
		if existing[hash] {
			res.CardsSkipped++
			continue
		}
		_, err := im.svc.AddCard(deck.ID, vocab.NewCard{
			Front: entry.Front,
			Back:  entry.Back,
			Notes: entry.Notes,
		})
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("adding card %q: %w", entry.Front, err))
			continue
		}
		existing[hash] = true
		res.CardsAdded++
	}
	return nil
}

// targetDeck finds the deck a file belongs to by name, creating it when it
// does not exist yet.
func (im *Importer) targetDeck(file *parser.DeckFile) (domain.Deck, bool, error) {
	for _, d := range im.svc.Decks() {
		if d.Name == file.Name {
			return d, false, nil
		}
	}

	target := file.TargetLanguage
	native := file.NativeLanguage
	if target == "" {
		target = "unknown"
	}
	if native == "" {
		native = "unknown"
	}
	deck, err := im.svc.CreateDeck(vocab.NewDeck{
		Name:           file.Name,
		TargetLanguage: target,
		NativeLanguage: native,
	})
	if err != nil {
		return domain.Deck{}, false, err
	}
	return deck, true, nil
}

// AddSource registers a deck source, classifying it as local or git.
func (im *Importer) AddSource(path string) error {
	existing, err := im.db.FindSourceByPath(path)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("source %s is already registered", path)
	}

	sourceType := "local"
	if gitsource.IsGitURL(path) {
		sourceType = "git"
	}
	_, err = im.db.InsertSource(path, sourceType)
	return err
}

// SyncSources reconciles every registered source. Git sources are pulled
// first; per-source failures are collected, never fatal.
func (im *Importer) SyncSources(reposDir string) (*Result, error) {
	sources, err := im.db.GetAllSources()
	if err != nil {
		return nil, err
	}
	total := &Result{}

	if len(sources) == 0 {
		im.logger.Info("no sources configured, add one with --add-source <path/or/url.git>")
		return total, nil
	}

	if err := os.MkdirAll(reposDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating repos directory: %w", err)
	}

	for _, source := range sources {
		im.logger.Info("syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		dir := source.Path
		if source.Type == "git" {
			localRepoPath, err := gitsource.LocalPath(reposDir, source.Path)
			if err != nil {
				total.Errors = append(total.Errors, fmt.Errorf("source %s: %w", source.Path, err))
				continue
			}
			if err := gitsource.Sync(source.Path, localRepoPath); err != nil {
				total.Errors = append(total.Errors, fmt.Errorf("source %s: %w", source.Path, err))
				continue
			}
			dir = localRepoPath
		}

		res, err := im.ImportDir(dir)
		if err != nil {
			total.Errors = append(total.Errors, fmt.Errorf("source %s: %w", source.Path, err))
			continue
		}
		total.DecksCreated += res.DecksCreated
		total.CardsAdded += res.CardsAdded
		total.CardsSkipped += res.CardsSkipped
		total.Errors = append(total.Errors, res.Errors...)

		if err := im.db.UpdateSourceLastScanned(source.ID); err != nil {
			im.logger.Warn("failed to update last scanned for source", "source_id", source.ID, "error", err)
		}
	}

	im.logger.Info("sync complete",
		"decks_created", total.DecksCreated,
		"cards_added", total.CardsAdded,
		"cards_skipped", total.CardsSkipped,
		"errors", len(total.Errors),
	)
	return total, nil
}
