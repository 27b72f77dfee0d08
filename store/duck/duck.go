// Package duck is a Store over ad-hoc exports read by an in-memory DuckDB.
//
// Exports without a schema (NDJSON, JSON arrays, CSV) are typed by DuckDB's
// auto detection and returned as records.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

const table = "records"

// Duck serializes loads and queries, refreshes arriving from concurrent commands.
type Duck struct {
	db     *sql.DB
	logger nt.Logger
	mu     sync.Mutex
	path   string
	fields []nt.Field
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open duckdb")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	dk.mu.Lock()
	defer dk.mu.Unlock()

	return filepath.Base(dk.path)
}

// Load a file, replacing any table loaded before
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	return dk.load(ctx, path)
}

// Fields returns fields in file order
func (dk *Duck) Fields() []nt.Field {
	dk.mu.Lock()
	defer dk.mu.Unlock()

	return dk.fields
}

// Records reloads the file and returns every row
func (dk *Duck) Records(ctx context.Context) (records []nt.Record, err error) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	if dk.path == "" {
		err = errors.New("no file loaded")
		return
	}

	err = dk.load(ctx, dk.path)
	if err != nil {
		return
	}

	return dk.query(ctx)
}

// unexported

// load expects the lock held
func (dk *Duck) load(ctx context.Context, path string) (err error) {

	err = loadTable(ctx, dk.db, path)
	if err != nil {
		return
	}

	fields, err := getFields(ctx, dk.db)
	if err != nil {
		return
	}

	dk.path = path
	dk.fields = fields
	dk.logger.Info(ctx, "loaded file", "path", path, "fields", len(fields))
	return
}

func (dk *Duck) query(ctx context.Context) (records []nt.Record, err error) {

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", table)
	rows, err := dk.db.QueryContext(ctx, query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query records")
		return
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	records = []nt.Record{}
	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(cols))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		rec := make(nt.Record, len(cols))
		for i, col := range cols {
			rec[col] = nt.Value{Raw: normalize(vals[i])}
		}
		records = append(records, rec)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

func loadTable(ctx context.Context, db *sql.DB, path string) (err error) {

	reader, err := readerFor(path)
	if err != nil {
		return
	}

	create := fmt.Sprintf(`
		CREATE OR REPLACE TABLE %s AS
		SELECT * FROM %s('%s')
	`, table, reader, strings.ReplaceAll(path, "'", "''"))

	_, err = db.ExecContext(ctx, create)
	err = errors.Wrapf(err, "failed to load %s", path)
	return
}

func readerFor(path string) (reader string, err error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		reader = "read_csv_auto"
	case ".json", ".ndjson", ".jsonl":
		reader = "read_json_auto"
	default:
		err = errors.Errorf("no reader for %s, want csv, json or ndjson", path)
	}
	return
}

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}

// normalize maps driver types onto record primitives.
func normalize(raw any) any {
	switch val := raw.(type) {
	case interface{ Float64() float64 }: // DECIMAL
		return val.Float64()
	case *big.Int: // HUGEINT
		f, _ := new(big.Float).SetInt(val).Float64()
		return f
	case []byte: // UUID, BLOB
		return string(val)
	}
	return raw
}

func getFields(ctx context.Context, db *sql.DB) (fields []nt.Field, err error) {

	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType string
		if err = rows.Scan(&name, &dataType); err != nil {
			err = errors.Wrapf(err, "failed to scan field")
			return
		}
		fields = append(fields, nt.Field{Name: name, Type: kindOf(dataType)})
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating schema")
	return
}

func kindOf(dataType string) nt.Kind {

	upper := strings.ToUpper(dataType)
	switch {
	case upper == "BOOLEAN":
		return nt.Bool
	case strings.HasPrefix(upper, "TIMESTAMP"), upper == "DATE", upper == "TIME":
		return nt.Time
	case upper == "VARCHAR":
		return nt.String
	case strings.HasPrefix(upper, "DECIMAL"),
		strings.HasSuffix(upper, "INT"), strings.HasSuffix(upper, "INTEGER"), // signed and unsigned
		upper == "DOUBLE", upper == "FLOAT", upper == "REAL":
		return nt.Number
	}
	return nt.Other
}
