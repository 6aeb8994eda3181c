package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	httpadapter "pressing/internal/adapters/in/http"
	"pressing/internal/adapters/out/postgres"
	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/pkg/testdb"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "https://auth.pressing.test/"
	testAudience = "pressing-api"
)

type uowFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (a uowFactory) Create() commands.UoW { return a.f.Create() }

type orderUoWFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type catalogUoWFactory struct{ f *postgres.GormUnitOfWorkFactory }

func (a catalogUoWFactory) Create() commands.CatalogUoW { return a.f.Create() }

// newTestAPI serves the whole API over a seeded in-memory database.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	db := testdb.Open(t)
	testdb.SeedDirectory(t, db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := postgres.NewGormUnitOfWorkFactory(db)
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:         commands.NewCreateOrderCommandHandler(uowFactory{f}),
		Transition:          commands.NewTransitionOrderStatusCommandHandler(orderUoWFactory{f}),
		BulkTransition:      commands.NewBulkTransitionOrderStatusCommandHandler(orderUoWFactory{f}),
		RecordPayment:       commands.NewRecordPaymentCommandHandler(orderUoWFactory{f}),
		CreateCatalogItem:   commands.NewCreateCatalogItemCommandHandler(catalogUoWFactory{f}),
		UpdateCatalogItem:   commands.NewUpdateCatalogItemCommandHandler(catalogUoWFactory{f}),
		DeleteCatalogItem:   commands.NewDeleteCatalogItemCommandHandler(catalogUoWFactory{f}),
		GetOrder:            queries.NewGetOrderQueryHandler(db),
		GetOrderByReference: queries.NewGetOrderByReferenceQueryHandler(db),
		ListOrders:          queries.NewListOrdersQueryHandler(db),
		ListCatalogItems:    queries.NewListCatalogItemsQueryHandler(db),
	}, logger)

	auth, err := httpadapter.NewAuthMiddleware(httpadapter.AuthConfig{
		Secret:   testSecret,
		Issuer:   testIssuer,
		Audience: testAudience,
	}, logger)
	require.NoError(t, err)

	e := echo.New()
	e.Use(httpadapter.NewRequestLogger(logger))
	server.RegisterRoutes(e, auth)
	return e
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	now := time.Now()
	base := jwt.MapClaims{
		"iss": testIssuer,
		"aud": []string{testAudience},
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		base[k] = v
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, base).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func supervisorToken(t *testing.T, pressing int64) string {
	t.Helper()
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":         "sup-1",
		"name":        "Awa Supervisor",
		"role":        "SUPERVISOR",
		"pressing_id": strconv.FormatInt(pressing, 10),
	})
}

func operatorToken(t *testing.T, plant int64) string {
	t.Helper()
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":      "op-1",
		"name":     "Paul Operator",
		"role":     "PLANT_OPERATOR",
		"plant_id": strconv.FormatInt(plant, 10),
	})
}

func adminToken(t *testing.T) string {
	t.Helper()
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":  "admin-1",
		"name": "Root",
		"role": "ADMIN",
	})
}

func do(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const newOrderBody = `{"clientId":"11","items":[{"label":"Shirt","quantity":3,"price":500},{"label":"Pants","quantity":2,"price":"400"}]}`

func createOrder(t *testing.T, e *echo.Echo) httpadapter.Order {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/orders", supervisorToken(t, testdb.PressingID), newOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpadapter.Order](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
