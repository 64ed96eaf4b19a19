package logbook

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
)

// ErrUnknownStore is returned for operations against a logbook that was
// never registered.
var ErrUnknownStore = errors.New("unknown logbook")

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Manager owns all registered logbooks in one database. Names and declared
// column lists are cached from the registry at construction.
type Manager struct {
	db      *sql.DB
	columns map[string][]string // store name -> declared column order
}

// NewManager loads the registry from an opened logbook database.
func NewManager(db *sql.DB) (*Manager, error) {
	m := &Manager{db: db, columns: map[string][]string{}}

	rows, err := db.Query(`SELECT name, columns FROM logbook_registry`)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, cols string
		if err := rows.Scan(&name, &cols); err != nil {
			return nil, fmt.Errorf("scanning registry: %w", err)
		}
		m.columns[name] = strings.Split(cols, ",")
	}
	return m, rows.Err()
}

// Register creates an empty logbook with the given declared columns. The
// name becomes part of the selector vocabulary, so it must be a plain
// lowercase identifier.
func (m *Manager) Register(name string, columns []string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid logbook name %q: use lowercase letters, digits and underscores", name)
	}
	if len(columns) == 0 {
		return fmt.Errorf("logbook %q needs at least one column", name)
	}
	if _, exists := m.columns[name]; exists {
		return fmt.Errorf("logbook %q already exists", name)
	}
	for _, col := range columns {
		if !identPattern.MatchString(col) {
			return fmt.Errorf("invalid column name %q in logbook %q", col, name)
		}
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("registering logbook: %w", err)
	}
	defer tx.Rollback()

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%q TEXT", col)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", tableName(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("creating logbook table: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO logbook_registry (name, columns) VALUES (?, ?)`,
		name, strings.Join(columns, ",")); err != nil {
		return fmt.Errorf("recording logbook: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("registering logbook: %w", err)
	}

	m.columns[name] = append([]string(nil), columns...)
	return nil
}

// ImportCSV registers a logbook named name whose schema is the CSV header,
// then loads every data row. The whole import is one transaction.
func (m *Manager) ImportCSV(name string, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading logbook header: %w", err)
	}
	for i, col := range header {
		header[i] = normalizeColumn(col)
	}
	if err := m.Register(name, header); err != nil {
		return 0, err
	}

	tx, err := m.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("importing logbook: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertSQL(name, header))
	if err != nil {
		return 0, fmt.Errorf("importing logbook: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading logbook row %d: %w", count+1, err)
		}
		args := make([]any, len(header))
		for i := range header {
			if i < len(record) && record[i] != "" {
				args[i] = record[i]
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("inserting logbook row %d: %w", count+1, err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("importing logbook: %w", err)
	}
	return count, nil
}

// Names returns the registered logbook names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.columns))
	for name := range m.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a logbook is registered.
func (m *Manager) Has(name string) bool {
	_, ok := m.columns[name]
	return ok
}

// Columns returns a logbook's declared columns in declaration order.
func (m *Manager) Columns(name string) ([]string, error) {
	cols, ok := m.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}
	return append([]string(nil), cols...), nil
}

// AppendResult reports how one appended row mapped onto the declared schema.
type AppendResult struct {
	Store          string
	Row            map[string]string
	MissingColumns []string // declared columns stored as null
	IgnoredKeys    []string // supplied keys with no declared column
}

// Append inserts one row. Declared columns absent from values are stored as
// null and reported; supplied keys outside the schema are ignored and
// reported. The insert is transactional: either the full row lands or
// nothing does.
func (m *Manager) Append(name string, values map[string]any) (*AppendResult, error) {
	cols, ok := m.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}

	res := &AppendResult{Store: name, Row: map[string]string{}}
	args := make([]any, len(cols))
	for i, col := range cols {
		v, ok := values[col]
		if !ok || v == nil {
			res.MissingColumns = append(res.MissingColumns, col)
			continue
		}
		s := domain.CoerceValue(v).Display()
		args[i] = s
		res.Row[col] = s
	}
	for key := range values {
		if !contains(cols, key) {
			res.IgnoredKeys = append(res.IgnoredKeys, key)
		}
	}
	sort.Strings(res.IgnoredKeys)

	tx, err := m.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("appending to %q: %w", name, err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(insertSQL(name, cols), args...); err != nil {
		return nil, fmt.Errorf("appending to %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("appending to %q: %w", name, err)
	}
	return res, nil
}

// Rows loads a logbook's full contents as a Frame, parsing cells the same
// way dataset ingestion does.
func (m *Manager) Rows(name string) (*domain.Frame, error) {
	cols, ok := m.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}

	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	rows, err := m.db.Query(fmt.Sprintf("SELECT %s FROM %q", strings.Join(quoted, ", "), tableName(name)))
	if err != nil {
		return nil, fmt.Errorf("reading logbook %q: %w", name, err)
	}
	defer rows.Close()

	frame, err := domain.NewFrame(cols)
	if err != nil {
		return nil, err
	}
	scan := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning logbook %q: %w", name, err)
		}
		vals := make([]domain.Value, len(cols))
		for i, cell := range scan {
			if cell.Valid {
				vals[i] = domain.ParseValue(cell.String)
			} else {
				vals[i] = domain.Null()
			}
		}
		if err := frame.AppendRow(vals); err != nil {
			return nil, err
		}
	}
	return frame, rows.Err()
}

// SchemaReport renders one line per logbook for the selector context, so the
// model only references stores and columns that actually exist. Empty when
// no logbooks are registered.
func (m *Manager) SchemaReport() string {
	names := m.Names()
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "- logbook %q with columns: %s\n", name, strings.Join(m.columns[name], ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Serialize renders a frame as CSV for use as read-only model context.
func Serialize(f *domain.Frame) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(f.Columns())
	for i := 0; i < f.Len(); i++ {
		record := make([]string, len(f.Columns()))
		for j, col := range f.Columns() {
			record[j] = f.Value(i, col).Display()
		}
		w.Write(record)
	}
	w.Flush()
	return buf.String()
}

// Template renders a starter CSV for a new logbook: a date column first,
// then the given metric columns, with no data rows.
func Template(metrics []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(append([]string{"date"}, metrics...))
	w.Flush()
	return buf.Bytes()
}

func tableName(name string) string { return "lb_" + name }

func insertSQL(name string, cols []string) string {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = fmt.Sprintf("%q", col)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		tableName(name), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

func normalizeColumn(col string) string {
	col = strings.ToLower(strings.TrimSpace(col))
	col = strings.ReplaceAll(col, " ", "_")
	return col
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
