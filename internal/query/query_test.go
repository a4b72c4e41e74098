package query_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParseDefaults(t *testing.T) {
	params := query.Parse(newContext("/"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 25, params.PerPage)
	assert.Equal(t, "", params.Search)
	assert.Equal(t, "asc", params.SortDir)
}

func TestParseCapsPerPage(t *testing.T) {
	params := query.Parse(newContext("/?page=3&per_page=500&sort_dir=desc&search=pad"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 100, params.PerPage)
	assert.Equal(t, "pad", params.Search)
	assert.Equal(t, "desc", params.SortDir)
}

func TestParseIgnoresInvalidValues(t *testing.T) {
	params := query.Parse(newContext("/?page=abc&per_page=-2&sort_dir=sideways"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 25, params.PerPage)
	assert.Equal(t, "asc", params.SortDir)
}

func TestApplySearchAndPagination(t *testing.T) {
	db := database.NewTestDB(t)

	names := []string{"Brake Pad", "Brake Disc", "Oil Filter", "Air Filter"}
	for _, name := range names {
		require.NoError(t, db.Create(&model.Dealer{Name: name, Phone: "1"}).Error)
	}

	params := query.Params{Page: 1, PerPage: 10, Search: "brake", SortBy: "name", SortDir: "asc"}

	var dealers []model.Dealer
	result := params.Apply(db.Model(&model.Dealer{}),
		[]string{"name"}, []string{"name"}).Find(&dealers)
	require.NoError(t, result.Error)

	require.Len(t, dealers, 2)
	assert.Equal(t, "Brake Disc", dealers[0].Name)
	assert.Equal(t, "Brake Pad", dealers[1].Name)
}

func TestApplyRejectsUnknownSortColumn(t *testing.T) {
	db := database.NewTestDB(t)

	require.NoError(t, db.Create(&model.Dealer{Name: "A", Phone: "1"}).Error)
	require.NoError(t, db.Create(&model.Dealer{Name: "B", Phone: "2"}).Error)

	// A sort column outside the allow-list must not reach the SQL
	params := query.Params{Page: 1, PerPage: 10, SortBy: "name; DROP TABLE dealers", SortDir: "asc"}

	var dealers []model.Dealer
	result := params.Apply(db.Model(&model.Dealer{}), nil, []string{"name"}).Find(&dealers)
	require.NoError(t, result.Error)
	assert.Len(t, dealers, 2)
}

func TestApplyPaginates(t *testing.T) {
	db := database.NewTestDB(t)

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&model.Dealer{Name: string(rune('A' + i)), Phone: "1"}).Error)
	}

	params := query.Params{Page: 2, PerPage: 3, SortBy: "name", SortDir: "asc"}

	var dealers []model.Dealer
	result := params.Apply(db.Model(&model.Dealer{}), nil, []string{"name"}).Find(&dealers)
	require.NoError(t, result.Error)

	require.Len(t, dealers, 3)
	assert.Equal(t, "D", dealers[0].Name)
}
