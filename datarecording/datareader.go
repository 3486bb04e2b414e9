package datarecording

import (
	"database/sql"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteReader reads tables back from a recorded SQLite file. It is mostly
// useful for inspecting finished runs and in tests.
type SQLiteReader struct {
	*sql.DB

	dbName string
}

// NewSQLiteReader creates a SQLiteReader for a database file at the given
// path, without the .sqlite3 suffix. Init must be called before use.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{dbName: path}
}

// Init establishes a connection to the database.
func (r *SQLiteReader) Init() {
	db, err := sql.Open("sqlite3", r.dbName+".sqlite3")
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// ListTables returns the names of all tables in the database.
func (r *SQLiteReader) ListTables() []string {
	rows, err := r.Query(
		"SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string

		err := rows.Scan(&name)
		if err != nil {
			panic(err)
		}

		tables = append(tables, name)
	}

	return tables
}

// CountRows returns the number of rows in a table.
func (r *SQLiteReader) CountRows(tableName string) int {
	var count int

	err := r.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&count)
	if err != nil {
		panic(err)
	}

	return count
}
