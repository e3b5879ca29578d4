package customers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	custsvc "titulos-console/internal/application/customers"
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
	require.NoError(t, db.AutoMigrate(&domain.Security{}, &domain.Customer{}, &domain.Allocation{}))

	h := &Handlers{Service: &custsvc.Service{DB: db}}
	app := fiber.New()
	app.Post("/api/v1/customers", h.Create)
	app.Get("/api/v1/customers", h.List)
	app.Get("/api/v1/customers/:id", h.Get)
	app.Get("/api/v1/customers/:id/allocations", h.Allocations)
	app.Post("/api/v1/customers/:id/allocations", h.CreateAllocation)
	return app, db
}

func seedSecurity(t *testing.T, db *gorm.DB) domain.Security {
	t.Helper()
	sec := domain.Security{
		ID:       uuid.New(),
		Kind:     "CDB",
		Maturity: "2027-01-01",
		Issuer:   "Banco Alfa",
		Rate:     decimal.NewFromInt(13),
	}
	require.NoError(t, db.Create(&sec).Error)
	return sec
}

func createCustomer(t *testing.T, app *fiber.App, name string) domain.Customer {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name})
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)
	var customer domain.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&customer))
	return customer
}

func TestCreate(t *testing.T) {
	app, _ := setupApp(t)
	customer := createCustomer(t, app, "  Ana  Souza ")
	assert.Equal(t, "Ana Souza", customer.Name)
	assert.NotEqual(t, uuid.Nil, customer.ID)
}

func TestCreate_InvalidName(t *testing.T) {
	app, _ := setupApp(t)

	body, _ := json.Marshal(map[string]string{"name": "A"})
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Customer name must be between 2 and 80 characters", out["detail"])
}

func TestList(t *testing.T) {
	app, _ := setupApp(t)
	createCustomer(t, app, "Bruno")
	createCustomer(t, app, "Ana")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/customers", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var customers []domain.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&customers))
	require.Len(t, customers, 2)
	assert.Equal(t, "Ana", customers[0].Name)
	assert.Equal(t, "Bruno", customers[1].Name)
}

func TestGet_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/customers/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestAllocations_EmptyList(t *testing.T) {
	app, _ := setupApp(t)
	customer := createCustomer(t, app, "Ana")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/customers/"+customer.ID.String()+"/allocations", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Customer    domain.Customer   `json:"customer"`
		Allocations []json.RawMessage `json:"allocations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, customer.ID, out.Customer.ID)
	// Present and empty, never null.
	assert.NotNil(t, out.Allocations)
	assert.Empty(t, out.Allocations)
}

func TestCreateAllocation(t *testing.T) {
	app, db := setupApp(t)
	sec := seedSecurity(t, db)
	customer := createCustomer(t, app, "Ana")

	body, _ := json.Marshal(map[string]any{"securityId": sec.ID.String(), "quantity": 4})
	req := httptest.NewRequest("POST", "/api/v1/customers/"+customer.ID.String()+"/allocations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var created custsvc.CreatedAllocation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, customer.ID, created.Allocation.CustomerID)
	assert.Equal(t, sec.ID, created.Allocation.SecurityID)
	assert.Equal(t, 4, created.Allocation.Quantity)
	assert.Equal(t, "Banco Alfa", created.Security.Issuer)
	assert.Equal(t, "Ana", created.Customer.Name)
}

func TestCreateAllocation_Errors(t *testing.T) {
	app, db := setupApp(t)
	sec := seedSecurity(t, db)
	customer := createCustomer(t, app, "Ana")

	cases := []struct {
		name     string
		path     string
		payload  map[string]any
		wantCode int
	}{
		{
			name:     "zero quantity",
			path:     "/api/v1/customers/" + customer.ID.String() + "/allocations",
			payload:  map[string]any{"securityId": sec.ID.String(), "quantity": 0},
			wantCode: 422,
		},
		{
			name:     "unknown customer",
			path:     "/api/v1/customers/" + uuid.New().String() + "/allocations",
			payload:  map[string]any{"securityId": sec.ID.String(), "quantity": 1},
			wantCode: 404,
		},
		{
			name:     "unknown security",
			path:     "/api/v1/customers/" + customer.ID.String() + "/allocations",
			payload:  map[string]any{"securityId": uuid.New().String(), "quantity": 1},
			wantCode: 404,
		},
		{
			name:     "malformed security id",
			path:     "/api/v1/customers/" + customer.ID.String() + "/allocations",
			payload:  map[string]any{"securityId": "nope", "quantity": 1},
			wantCode: 422,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.payload)
			req := httptest.NewRequest("POST", tc.path, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, resp.StatusCode)
		})
	}
}

func TestAllocations_UnknownCustomer(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/customers/"+uuid.New().String()+"/allocations", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Customer not found", out["detail"])
}
