// Package sqlite implements the embedded store for labtrail on top of
// modernc.org/sqlite. One database file holds all tables; the schema is
// applied with IF NOT EXISTS on every open so bootstrap is idempotent.
package sqlite

// Schema DDL for all tables.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    role TEXT NOT NULL DEFAULT 'analyst',
    active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);`

	createSamples = `CREATE TABLE IF NOT EXISTS samples (
    id TEXT PRIMARY KEY,
    client TEXT,
    project TEXT,
    matrix TEXT,
    description TEXT,
    received_at TEXT,
    due_at TEXT,
    status TEXT NOT NULL DEFAULT 'registered',
    priority TEXT NOT NULL DEFAULT 'normal',
    location TEXT,
    created_by TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT
);`

	createTests = `CREATE TABLE IF NOT EXISTS tests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sample_id TEXT NOT NULL,
    test_name TEXT NOT NULL,
    method TEXT,
    unit TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    assigned_to TEXT,
    due_at TEXT,
    FOREIGN KEY(sample_id) REFERENCES samples(id)
);`

	createResults = `CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    test_id INTEGER NOT NULL,
    analyte TEXT NOT NULL,
    value REAL,
    unit TEXT,
    uncertainty REAL,
    notes TEXT,
    measured_at TEXT,
    FOREIGN KEY(test_id) REFERENCES tests(id)
);`

	createAttachments = `CREATE TABLE IF NOT EXISTS attachments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sample_id TEXT NOT NULL,
    label TEXT,
    url TEXT NOT NULL,
    added_by TEXT,
    added_at TEXT NOT NULL,
    FOREIGN KEY(sample_id) REFERENCES samples(id)
);`

	createCoc = `CREATE TABLE IF NOT EXISTS coc (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sample_id TEXT NOT NULL,
    event TEXT NOT NULL,
    by_user TEXT,
    at_time TEXT NOT NULL,
    notes TEXT
);`

	createAudit = `CREATE TABLE IF NOT EXISTS audit (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id TEXT NOT NULL UNIQUE,
    entity TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    action TEXT NOT NULL,
    by_user TEXT,
    at_time TEXT NOT NULL,
    details TEXT
);`

	createQCEvents = `CREATE TABLE IF NOT EXISTS qc_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    instrument TEXT,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'open',
    at_time TEXT NOT NULL,
    by_user TEXT
);`
)

// Index DDL for common queries.
const (
	idxSamplesStatus = `CREATE INDEX IF NOT EXISTS idx_samples_status ON samples(status);`
	idxSamplesDue    = `CREATE INDEX IF NOT EXISTS idx_samples_due ON samples(due_at);`
	idxTestsSample   = `CREATE INDEX IF NOT EXISTS idx_tests_sample ON tests(sample_id);`
	idxTestsStatus   = `CREATE INDEX IF NOT EXISTS idx_tests_status ON tests(status);`
	idxResultsTest   = `CREATE INDEX IF NOT EXISTS idx_results_test ON results(test_id);`
	idxAttachSample  = `CREATE INDEX IF NOT EXISTS idx_attachments_sample ON attachments(sample_id);`
	idxCocSample     = `CREATE INDEX IF NOT EXISTS idx_coc_sample ON coc(sample_id);`
	idxAuditEntity   = `CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit(entity);`
	idxQCStatus      = `CREATE INDEX IF NOT EXISTS idx_qc_events_status ON qc_events(status);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createMeta,
	createUsers,
	createSamples,
	createTests,
	createResults,
	createAttachments,
	createCoc,
	createAudit,
	createQCEvents,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSamplesStatus,
	idxSamplesDue,
	idxTestsSample,
	idxTestsStatus,
	idxResultsTest,
	idxAttachSample,
	idxCocSample,
	idxAuditEntity,
	idxQCStatus,
}
