package offering

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/database"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db := database.NewBunDB(sqlDB)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func sqlLike(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return "(?s)" + strings.Join(quoted, ".*")
}

var serviceColumns = []string{
	"id", "title", "slug", "short_description", "description", "image", "features",
	"is_active", "sort_order", "created_at", "updated_at",
}

func TestRepository_List_FilterAndOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	active := true

	mock.ExpectQuery(sqlLike(`FROM "services"`, `is_active = TRUE`, `ORDER BY sort_order ASC, created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow(uuid.NewString(), "Tax Advisory", "tax-advisory", "Short", "Long", "img.png", "{Filing,Planning}", true, 1, now, now))

	got, err := repo.List(context.Background(), &active)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tax-advisory", got[0].Slug)
	assert.Equal(t, []string{"Filing", "Planning"}, got[0].Features)
	assert.Equal(t, 1, got[0].Order)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBySlug_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(sqlLike(`FROM "services"`, `slug = 'missing'`)).
		WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(sqlLike(`INSERT INTO "services"`, `'tax-advisory'`)).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &Offering{Title: "Tax Advisory", Slug: "tax-advisory"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectExec(sqlLike(`DELETE FROM "services"`, id.String())).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(sqlLike(`DELETE FROM "services"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
}
