package store

// Schema DDL for the SQLite snapshot.
const (
	createSchemaInfo = `CREATE TABLE schema_info (
    format TEXT NOT NULL,
    version INTEGER NOT NULL
);`

	createRandomTables = `CREATE TABLE random_tables (
    table_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);`

	createTableEntries = `CREATE TABLE table_entries (
    table_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (table_id, position),
    FOREIGN KEY (table_id) REFERENCES random_tables(table_id) ON DELETE CASCADE
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSchemaInfo,
	createRandomTables,
	createTableEntries,
}
