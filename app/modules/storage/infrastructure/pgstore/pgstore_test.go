package pgstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestImpl_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func(m sqlmock.Sqlmock)
		wantValue string
		wantErr   error
		anyErr    bool
	}{
		{
			name: "found",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"key", "value"}).
					AddRow(storage.KeyToken, "tok")
				m.ExpectQuery(`SELECT .* FROM "kv_entries" AS "kv" WHERE \(key = 'esportivo.token'\)`).WillReturnRows(rows)
			},
			wantValue: "tok",
		},
		{
			name: "missing",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT .* FROM "kv_entries"`).WillReturnRows(
					sqlmock.NewRows([]string{"key", "value"}))
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "driver failure",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT .* FROM "kv_entries"`).WillReturnError(errors.New("connection refused"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			got, err := New(db).Get(ctx, storage.KeyToken)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, storage.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantValue, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestImpl_SetUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT \(key\) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, New(db).Set(context.Background(), storage.KeyClub, `{"id":3}`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImpl_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "kv_entries" AS "kv" WHERE \(key = 'esportivo.user'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, New(db).Delete(context.Background(), storage.KeyUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}
