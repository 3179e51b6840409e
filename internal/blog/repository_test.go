package blog

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

var postColumns = []string{
	"id", "title", "slug", "excerpt", "content", "featured_image", "author_id", "category", "tags",
	"status", "published_at", "created_at", "updated_at", "author__id", "author__name", "author__email",
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	authorID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(sqlLike(`count(*)`, `FROM "blog_posts"`, `bp.status = 'published'`, `bp.category = 'Tax'`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(sqlLike(
		`FROM "blog_posts"`,
		`LEFT JOIN "users" AS "author"`,
		`bp.status = 'published'`,
		`ORDER BY bp.published_at DESC NULLS LAST, bp.created_at DESC`,
		`LIMIT 10`,
		`OFFSET 10`,
	)).WillReturnRows(sqlmock.NewRows(postColumns).
		AddRow(uuid.NewString(), "GST in 2026", "gst-in-2026", "Short", "Body", "", authorID.String(), "Tax", "{gst}",
			"published", now, now, now, authorID.String(), "Writer", "writer@example.com"))

	posts, total, err := repo.List(context.Background(), Filter{Status: StatusPublished, Category: "Tax", Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "Writer", posts[0].Author.Name)
	assert.Equal(t, []string{"gst"}, posts[0].Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_BySlugPublishedOnly(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(sqlLike(`FROM "blog_posts"`, `bp.slug = 'draft-post'`, `bp.status = 'published'`)).
		WillReturnRows(sqlmock.NewRows(postColumns))

	_, err := repo.Get(context.Background(), "draft-post", true)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_ByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(sqlLike(`FROM "blog_posts"`, `bp.id = '` + id.String() + `'`)).
		WillReturnRows(sqlmock.NewRows(postColumns))

	_, err := repo.Get(context.Background(), id.String(), false)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_DeletedAuthor(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(sqlLike(`FROM "blog_posts"`, `LEFT JOIN "users" AS "author"`, `bp.id = '` + id.String() + `'`)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(id.String(), "Orphaned", "orphaned", "Short", "Body", "", nil, "Tax", "{}",
				"published", now, now, now, nil, nil, nil))

	post, err := repo.Get(context.Background(), id.String(), false)
	require.NoError(t, err)
	assert.Nil(t, post.Author)
	assert.Equal(t, uuid.Nil, post.AuthorID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapModelToDBPost_NoAuthor(t *testing.T) {
	assert.Nil(t, mapModelToDBPost(&Post{Title: "x"}).AuthorID)

	authorID := uuid.New()
	out := mapModelToDBPost(&Post{AuthorID: authorID})
	require.NotNil(t, out.AuthorID)
	assert.Equal(t, authorID, *out.AuthorID)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectExec(sqlLike(`DELETE FROM "blog_posts"`, id.String())).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
}
