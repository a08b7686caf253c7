package catalog

// schema holds the catalog tables. The physical layout is owned by this
// package alone; everything else goes through Store methods.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    artist        TEXT NOT NULL DEFAULT '',
    title         TEXT NOT NULL DEFAULT '',
    folder_path   TEXT NOT NULL DEFAULT '',
    file_size     INTEGER NOT NULL DEFAULT 0,
    analysis_path TEXT NOT NULL DEFAULT '',
    analyzed      INTEGER NOT NULL DEFAULT 0,
    updated_at    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_folder_path ON entries(folder_path);
`
