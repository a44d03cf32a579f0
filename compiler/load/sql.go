package load

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/structgen/schema"
)

// Database dialects supported by SQLStore.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// DefaultTable is the table SQLStore reads when none is given.
const DefaultTable = "schema_nodes"

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// SQLStore keeps a schema graph in a table with one row per node:
//
//	seq   integer  position of the node in the graph
//	uid   text     node uid
//	type  text     node kind
//	body  text     the node encoded as JSON
type SQLStore struct {
	db      *sql.DB
	dialect string
	table   string
}

// OpenSQL opens a database with the given dialect and source and returns a
// store on the default table.
func OpenSQL(dialect, source string) (*SQLStore, error) {
	if err := checkDialect(dialect); err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	return &SQLStore{db: db, dialect: dialect, table: DefaultTable}, nil
}

// NewSQLStore wraps an open database.
func NewSQLStore(db *sql.DB, dialect string) (*SQLStore, error) {
	if err := checkDialect(dialect); err != nil {
		return nil, err
	}
	return &SQLStore{db: db, dialect: dialect, table: DefaultTable}, nil
}

// WithTable sets the table holding the nodes.
func (s *SQLStore) WithTable(table string) (*SQLStore, error) {
	if table == "" || len(table) > 128 || !validIdentifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	s.table = table
	return s, nil
}

// DB returns the underlying database.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }

// Init creates the node table if it does not exist.
func (s *SQLStore) Init(ctx context.Context) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (seq INTEGER NOT NULL PRIMARY KEY, uid VARCHAR(255) NOT NULL, type VARCHAR(32) NOT NULL, body TEXT NOT NULL)", s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Save replaces the stored graph with the nodes in a single transaction.
func (s *SQLStore) Save(ctx context.Context, nodes []schema.Node) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+s.table); err != nil {
		return fmt.Errorf("clear %s: %w", s.table, err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (seq, uid, type, body) VALUES (%s)", s.table, s.placeholders(4))
	for i, n := range nodes {
		body, merr := json.Marshal(n)
		if merr != nil {
			return fmt.Errorf("encode node %q: %w", n.UID, merr)
		}
		if _, err = tx.ExecContext(ctx, insert, i, n.UID, string(n.Type), string(body)); err != nil {
			return fmt.Errorf("insert node %q: %w", n.UID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Nodes reads the stored graph in sequence order.
func (s *SQLStore) Nodes(ctx context.Context) ([]schema.Node, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT uid, body FROM %s ORDER BY seq", s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()
	var nodes []schema.Node
	for rows.Next() {
		var uid, body string
		if err := rows.Scan(&uid, &body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		var n schema.Node
		if err := json.Unmarshal([]byte(body), &n); err != nil {
			return nil, fmt.Errorf("decode node %q: %w", uid, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}
	return nodes, nil
}

// placeholders returns n bind parameters in the dialect's syntax.
func (s *SQLStore) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		if s.dialect == Postgres {
			ps[i] = "$" + strconv.Itoa(i+1)
		} else {
			ps[i] = "?"
		}
	}
	return strings.Join(ps, ", ")
}

func checkDialect(dialect string) error {
	switch dialect {
	case MySQL, SQLite, Postgres:
		return nil
	default:
		return fmt.Errorf("unsupported dialect %q; use mysql, sqlite or postgres", dialect)
	}
}
