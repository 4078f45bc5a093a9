package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	sql     []string
	args    [][]any
	execErr error
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("DELETE 3"), f.execErr
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return nil, errors.New("query not supported by fake")
}

func TestBuildInsert(t *testing.T) {
	query, args, err := buildInsert(CollectionTableRows, []Row{
		{"team": "A", "points": 10},
		{"team": "B", "points": 7},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "table_rows" ("points", "team") VALUES ($1, $2), ($3, $4) RETURNING *`, query)
	assert.Equal(t, []any{10, "A", 7, "B"}, args)
}

func TestBuildInsert_MissingColumnsAreNull(t *testing.T) {
	query, args, err := buildInsert(CollectionNews, []Row{
		{"title": "a", "image_url": "x"},
		{"title": "b"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "news" ("image_url", "title") VALUES ($1, $2), ($3, $4)`, query)
	assert.Equal(t, []any{"x", "a", nil, "b"}, args)
}

func TestBuildInsert_Errors(t *testing.T) {
	_, _, err := buildInsert(Collection("pg_user"), []Row{{"a": 1}}, false)
	assert.Error(t, err)

	_, _, err = buildInsert(CollectionNews, nil, false)
	assert.Error(t, err)

	_, _, err = buildInsert(CollectionNews, []Row{{}}, false)
	assert.Error(t, err)
}

func TestBuildDelete(t *testing.T) {
	query, args, err := buildDelete(CollectionTableRows, Where("season", OpEq, "2025/2026").And("round", OpEq, "3"))
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "table_rows" WHERE "season" = $1 AND "round" = $2`, query)
	assert.Equal(t, []any{"2025/2026", "3"}, args)

	query, args, err = buildDelete(CollectionTableRows, AllRows())
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "table_rows" WHERE "id" > $1`, query)
	assert.Equal(t, []any{0}, args)
}

func TestBuildDelete_RejectsEmptyFilter(t *testing.T) {
	_, _, err := buildDelete(CollectionTableRows, Filter{})
	assert.Error(t, err)

	_, _, err = buildDelete(CollectionTableRows, Filter{{Column: "id", Op: Op("like"), Value: "%"}})
	assert.Error(t, err)
}

func TestPostgresRows_DeleteAll(t *testing.T) {
	q := &fakeQuerier{}
	rows := NewPostgresRows(q)

	require.NoError(t, rows.DeleteAll(context.Background(), CollectionTableRows, AllRows()))
	require.Len(t, q.sql, 1)
	assert.Equal(t, `DELETE FROM "table_rows" WHERE "id" > $1`, q.sql[0])
}

func TestPostgresRows_InsertWithoutRepresentationUsesExec(t *testing.T) {
	q := &fakeQuerier{}
	rows := NewPostgresRows(q)

	inserted, err := rows.Insert(context.Background(), CollectionPlayers, []Row{{"full_name": "Marko"}}, false)
	require.NoError(t, err)
	assert.Nil(t, inserted)
	assert.Equal(t, `INSERT INTO "players" ("full_name") VALUES ($1)`, q.sql[0])
}

func TestPostgresRows_MapsPgError(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}}
	rows := NewPostgresRows(q)

	err := rows.DeleteAll(context.Background(), CollectionTableRows, AllRows())
	var writeErr *RemoteWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "23505", writeErr.Code)
	assert.Equal(t, "delete table_rows: duplicate key value violates unique constraint", writeErr.Error())
}

func TestPostgresRows_QueryFailure(t *testing.T) {
	q := &fakeQuerier{}
	rows := NewPostgresRows(q)

	_, err := rows.Insert(context.Background(), CollectionNews, []Row{{"title": "x"}}, true)
	var writeErr *RemoteWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "insert", writeErr.Op)
}
