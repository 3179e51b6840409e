package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/database"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

type memStore struct {
	current *Settings
	creates int
}

func (m *memStore) GetOrCreate(_ context.Context, defaults *Settings) (*Settings, error) {
	if m.current == nil {
		m.creates++
		d := *defaults
		d.ID = uuid.New()
		m.current = &d
	}
	c := *m.current
	return &c, nil
}

func (m *memStore) Modify(_ context.Context, by uuid.UUID, fn func(*Settings)) (*Settings, error) {
	fn(m.current)
	m.current.UpdatedBy = &by
	c := *m.current
	return &c, nil
}

func TestInput_ApplyMergesSocialLinks(t *testing.T) {
	s := Defaults()
	s.SocialLinks = SocialLinks{Facebook: "fb", Twitter: "tw"}

	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"siteName":"New","socialLinks":{"twitter":"","linkedin":"li"}}`), &in))
	in.Apply(s)

	assert.Equal(t, "New", s.SiteName)
	assert.Equal(t, SocialLinks{Facebook: "fb", Twitter: "", LinkedIn: "li"}, s.SocialLinks)
	assert.Equal(t, "U69201KA2025PTC213011", s.CompanyInfo.CIN, "untouched fields keep their value")
}

func TestHandler_GetAndUpdate(t *testing.T) {
	store := &memStore{}
	h := NewHandler(NewService(store), false)
	actor := &user.User{ID: uuid.New(), Role: user.RoleAdmin, IsActive: true}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"siteName":"89T Corporate Advisors"`)

	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"contactPhone":"+91 80 0000","socialLinks":{"instagram":"ig"}}`))
	req = req.WithContext(user.NewContext(req.Context(), actor))
	rec = httptest.NewRecorder()
	h.Update(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string   `json:"message"`
		Data    Settings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Settings updated successfully.", body.Message)
	assert.Equal(t, "+91 80 0000", body.Data.ContactPhone)
	assert.Equal(t, "ig", body.Data.SocialLinks.Instagram)
	assert.Equal(t, &actor.ID, body.Data.UpdatedBy)
	assert.Equal(t, 1, store.creates)
}

func TestRepository_GetOrCreate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := database.NewBunDB(sqlDB)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (singleton) DO NOTHING`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_by"}))
	mock.ExpectQuery(`(?s)FROM "settings".*singleton = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "singleton", "site_name", "social_links", "company_info", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), true, "Existing Site", `{"linkedin":"li"}`, `{"cin":"X"}`, now, now))

	got, err := repo.GetOrCreate(context.Background(), Defaults())
	require.NoError(t, err)
	assert.Equal(t, "Existing Site", got.SiteName)
	assert.Equal(t, "li", got.SocialLinks.LinkedIn)
	assert.Equal(t, "X", got.CompanyInfo.CIN)
	require.NoError(t, mock.ExpectationsWereMet())
}
