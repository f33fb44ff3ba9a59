package sqlite

import "database/sql"

// schema sets up the journal table. It runs on startup to ensure tables exist.
// (run_id, entity_id, version) is unique: within one run the store never
// accepts two writes producing the same version of an entity.
const schema = `
CREATE TABLE IF NOT EXISTS journal (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    entity_id INTEGER NOT NULL,
    version INTEGER NOT NULL,
    kind TEXT NOT NULL,
    payload BLOB NOT NULL,
    recorded_at INTEGER NOT NULL,
    UNIQUE (run_id, entity_id, version)
);

CREATE INDEX IF NOT EXISTS idx_journal_run_entity ON journal(run_id, entity_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
