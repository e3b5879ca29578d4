package securities

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	secsvc "titulos-console/internal/application/securities"
	"titulos-console/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Security{}))

	h := &Handlers{Service: &secsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/api/v1/securities", h.List)
	app.Get("/api/v1/securities/meta", h.Meta)
	app.Get("/api/v1/securities/:id", h.Get)
	return app, db
}

func seed(t *testing.T, db *gorm.DB, kind, maturity, issuer, rate string) domain.Security {
	t.Helper()
	sec := domain.Security{
		ID:       uuid.New(),
		Kind:     kind,
		Maturity: maturity,
		Issuer:   issuer,
		Rate:     decimal.RequireFromString(rate),
	}
	require.NoError(t, db.Create(&sec).Error)
	return sec
}

func TestList_FiltersAndSorts(t *testing.T) {
	app, db := setupApp(t)
	seed(t, db, "CDB", "2027-01-01", "A", "12")
	seed(t, db, "CDB", "2028-01-01", "B", "15")
	seed(t, db, "CDB", "2026-01-01", "C", "9.7")
	seed(t, db, "LCI", "2026-01-01", "D", "99")

	req := httptest.NewRequest("GET", "/api/v1/securities?kind=CDB&sort=rate&order=desc&limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []domain.Security
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Issuer)
	assert.Equal(t, "A", items[1].Issuer)
}

func TestList_InvalidRateBound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities?rateMin=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid rateMin", body["detail"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/securities?rateMax=1..2", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestList_InvalidMaturityBound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities?maturityFrom=15%2F03%2F2027", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid maturityFrom", body["detail"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/securities?maturityTo=2027-3-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestList_RateBoundsApplied(t *testing.T) {
	app, db := setupApp(t)
	seed(t, db, "CDB", "2026-01-01", "A", "9")
	seed(t, db, "CDB", "2027-01-01", "B", "12")
	seed(t, db, "CDB", "2028-01-01", "C", "15")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities?rateMin=10&rateMax=14", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []domain.Security
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Issuer)
}

func TestList_EmptyCatalog(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []domain.Security
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Empty(t, items)
}

func TestGet_ByID(t *testing.T) {
	app, db := setupApp(t)
	sec := seed(t, db, "CDB", "2027-01-01", "Banco Alfa", "13.5")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities/"+sec.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, sec.ID.String(), got["id"])
	assert.Equal(t, "CDB", got["kind"])
	// Rates travel as decimal strings.
	assert.Equal(t, "13.5", got["rate"])
}

func TestGet_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Security not found", body["detail"])
}

func TestGet_InvalidID(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestMeta(t *testing.T) {
	app, db := setupApp(t)
	seed(t, db, "CDB", "2026-01-01", "Banco Beta", "10")
	seed(t, db, "LCI", "2027-01-01", "Banco Alfa", "11")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/securities/meta", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var meta secsvc.Meta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.EqualValues(t, 2, meta.Total)
	assert.Equal(t, []string{"CDB", "LCI"}, meta.Kinds)
	assert.Equal(t, []string{"Banco Alfa", "Banco Beta"}, meta.Issuers)
}
