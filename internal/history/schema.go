package history

const schema = `
-- The 'reviews' table is an append-only log of individual card reviews.
-- Deck state itself lives in the JSON document; these rows exist for
-- reporting and are never read back into scheduling.
CREATE TABLE IF NOT EXISTS reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_id TEXT NOT NULL,
    card_id TEXT NOT NULL,
    rating INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    interval_days INTEGER NOT NULL,
    reviewed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_card ON reviews(card_id);
CREATE INDEX IF NOT EXISTS idx_reviews_deck ON reviews(deck_id);

-- The 'sources' table tracks where deck files are imported from, either a
-- local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    last_scanned DATETIME
);
`
