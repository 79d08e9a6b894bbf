// Package history keeps an append-only review log and the registered deck
// sources in a local sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Review is one logged review event.
type Review struct {
	ID           int64
	DeckID       string
	CardID       string
	Rating       int
	Correct      bool
	IntervalDays int
	ReviewedAt   time.Time
}

// LogReview appends one review event to the log.
func (db *DB) LogReview(r Review) error {
	_, err := db.conn.Exec(`
		INSERT INTO reviews (deck_id, card_id, rating, correct, interval_days, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.DeckID,
		r.CardID,
		r.Rating,
		r.Correct,
		r.IntervalDays,
		r.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log review for card %s: %w", r.CardID, err)
	}
	return nil
}

// CardHistory returns the logged reviews for one card, oldest first.
func (db *DB) CardHistory(cardID string) ([]Review, error) {
	rows, err := db.conn.Query(`
		SELECT id, deck_id, card_id, rating, correct, interval_days, reviewed_at
		FROM reviews WHERE card_id = ? ORDER BY reviewed_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for card %s: %w", cardID, err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

// RecentReviews returns the latest logged reviews across all decks.
func (db *DB) RecentReviews(limit int) ([]Review, error) {
	rows, err := db.conn.Query(`
		SELECT id, deck_id, card_id, rating, correct, interval_days, reviewed_at
		FROM reviews ORDER BY reviewed_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

// DeckAccuracy returns the total reviews logged for a deck and how many of
// them were correct.
func (db *DB) DeckAccuracy(deckID string) (total, correct int, err error) {
	row := db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(correct), 0)
		FROM reviews WHERE deck_id = ?
	`, deckID)
	if err := row.Scan(&total, &correct); err != nil {
		return 0, 0, fmt.Errorf("failed to get accuracy for deck %s: %w", deckID, err)
	}
	return total, correct, nil
}

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(
			&r.ID,
			&r.DeckID,
			&r.CardID,
			&r.Rating,
			&r.Correct,
			&r.IntervalDays,
			&r.ReviewedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Source represents a deck file source, either a local path or a Git URL.
type Source struct {
	ID          int64
	Path        string
	Type        string // "local" or "git"
	LastScanned sql.NullTime
}

// InsertSource inserts a new source path into the database and returns its ID.
func (db *DB) InsertSource(path, sourceType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, type)
		VALUES (?, ?)
	`, path, sourceType)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// FindSourceByPath retrieves a source from the database by its path.
// A missing source returns (nil, nil).
func (db *DB) FindSourceByPath(path string) (*Source, error) {
	var s Source
	row := db.conn.QueryRow(`
		SELECT id, path, type, last_scanned
		FROM sources WHERE path = ?
	`, path)

	err := row.Scan(&s.ID, &s.Path, &s.Type, &s.LastScanned)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	return &s, nil
}

// GetAllSources retrieves all stored sources from the database.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, last_scanned
		FROM sources
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// UpdateSourceLastScanned updates the last_scanned timestamp for a source.
func (db *DB) UpdateSourceLastScanned(sourceID int64) error {
	_, err := db.conn.Exec(`
		UPDATE sources
		SET last_scanned = ?
		WHERE id = ?
	`, time.Now(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source ID %d: %w", sourceID, err)
	}
	return nil
}

// DeleteSource removes a source by its ID.
func (db *DB) DeleteSource(id int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM sources
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete source ID %d: %w", id, err)
	}
	return nil
}
