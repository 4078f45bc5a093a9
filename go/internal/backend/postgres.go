package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool used by PostgresRows.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRows is a RowStore that writes straight to the database behind
// the data API, for deployments that run without PostgREST.
type PostgresRows struct {
	db Querier
}

func NewPostgresRows(db Querier) *PostgresRows {
	return &PostgresRows{db: db}
}

func (p *PostgresRows) Insert(ctx context.Context, collection Collection, rows []Row, returnRepresentation bool) ([]Row, error) {
	query, args, err := buildInsert(collection, rows, returnRepresentation)
	if err != nil {
		return nil, &RemoteWriteError{Op: "insert", Collection: collection, Message: err.Error(), Err: err}
	}

	if !returnRepresentation {
		if _, err := p.db.Exec(ctx, query, args...); err != nil {
			return nil, pgWriteError("insert", collection, err)
		}
		return nil, nil
	}

	result, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pgWriteError("insert", collection, err)
	}
	inserted, err := pgx.CollectRows(result, pgx.RowToMap)
	if err != nil {
		return nil, pgWriteError("insert", collection, err)
	}
	return inserted, nil
}

func (p *PostgresRows) DeleteAll(ctx context.Context, collection Collection, filter Filter) error {
	query, args, err := buildDelete(collection, filter)
	if err != nil {
		return &RemoteWriteError{Op: "delete", Collection: collection, Message: err.Error(), Err: err}
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return pgWriteError("delete", collection, err)
	}
	return nil
}

// buildInsert renders a multi-row INSERT. The column list is the sorted
// union of all row keys; rows missing a column insert NULL for it.
func buildInsert(collection Collection, rows []Row, returning bool) (string, []any, error) {
	if !collection.Valid() {
		return "", nil, fmt.Errorf("unknown collection %q", collection)
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("no rows to insert")
	}

	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for column := range row {
			if _, ok := seen[column]; !ok {
				seen[column] = struct{}{}
				columns = append(columns, column)
			}
		}
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("rows have no columns")
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = pgx.Identifier{column}.Sanitize()
	}

	args := make([]any, 0, len(rows)*len(columns))
	tuples := make([]string, len(rows))
	for i, row := range rows {
		placeholders := make([]string, len(columns))
		for j, column := range columns {
			args = append(args, row[column])
			placeholders[j] = fmt.Sprintf("$%d", len(args))
		}
		tuples[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(pgx.Identifier{string(collection)}.Sanitize())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")
	sb.WriteString(strings.Join(tuples, ", "))
	if returning {
		sb.WriteString(" RETURNING *")
	}
	return sb.String(), args, nil
}

func buildDelete(collection Collection, filter Filter) (string, []any, error) {
	if !collection.Valid() {
		return "", nil, fmt.Errorf("unknown collection %q", collection)
	}
	if err := filter.validate(); err != nil {
		return "", nil, err
	}

	var args []any
	predicates := make([]string, len(filter))
	for i, c := range filter {
		column := pgx.Identifier{c.Column}.Sanitize()
		switch c.Op {
		case OpEq:
			args = append(args, c.Value)
			predicates[i] = fmt.Sprintf("%s = $%d", column, len(args))
		case OpGt:
			args = append(args, c.Value)
			predicates[i] = fmt.Sprintf("%s > $%d", column, len(args))
		}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s",
		pgx.Identifier{string(collection)}.Sanitize(),
		strings.Join(predicates, " AND "))
	return query, args, nil
}

func pgWriteError(op string, collection Collection, err error) error {
	out := &RemoteWriteError{
		Op:         op,
		Collection: collection,
		Message:    err.Error(),
		Timeout:    isTimeout(err),
		Err:        err,
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		out.Code = pgErr.Code
		out.Message = pgErr.Message
	} else if out.Timeout {
		out.Message = "request timed out"
	}
	return out
}
