package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/catalog-api/internal/infrastructure/repository/memory"
	storagememory "github.com/mrops-br/catalog-api/internal/infrastructure/storage/memory"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var testSecret = []byte("server-test-secret")

type testEnv struct {
	handler http.Handler
	images  *storagememory.ImageStore
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tracer := tracenoop.NewTracerProvider().Tracer("test")
	meterProvider := metricnoop.NewMeterProvider()
	meter := meterProvider.Meter("test")
	logger := slog.New(slog.DiscardHandler)

	images := storagememory.NewImageStore(logger)
	products := service.NewProductService(memory.NewProductRepository(tracer, logger), images, tracer, meter, logger)
	offers := service.NewOfferService(memory.NewOfferRepository(tracer, logger), images, tracer, meter, logger)

	srv := NewServer(
		&config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		handler.NewProductHandler(products, logger),
		handler.NewOfferHandler(offers, logger),
		middleware.Authenticate(testSecret, logger),
		logger,
		meterProvider,
	)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	return &testEnv{handler: srv.Handler(), images: images, token: token}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, body string, auth bool) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rec.Body.String(), err)
		}
		if env.StatusCode != rec.Code {
			t.Errorf("%s %s: envelope statusCode %d != HTTP status %d", method, path, env.StatusCode, rec.Code)
		}
	}
	return rec.Code, env
}

const productBody = `{"productName":"A","oldPrice":100,"offerPrice":80,"categories":"x","productCategoryId":3,"productImage":"url1"}`

func createProduct(t *testing.T, e *testEnv) string {
	t.Helper()
	status, env := e.do(t, http.MethodPost, "/products/", productBody, true)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", status, env.Message)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	return created.ID
}

func TestProductRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	id := createProduct(t, e)

	status, env := e.do(t, http.MethodGet, "/products/"+id, "", true)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}

	var got struct {
		ProductName    string  `json:"productName"`
		ProductImage   string  `json:"productImage"`
		OldPrice       float64 `json:"oldPrice"`
		OfferPrice     float64 `json:"offerPrice"`
		ProductDetails struct {
			Categories        string `json:"categories"`
			ProductCategoryID int    `json:"productCategoryId"`
		} `json:"productDetails"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ProductName != "A" || got.ProductImage != "url1" || got.OldPrice != 100 || got.OfferPrice != 80 ||
		got.ProductDetails.Categories != "x" || got.ProductDetails.ProductCategoryID != 3 {
		t.Errorf("fetched product = %+v", got)
	}

	status, env = e.do(t, http.MethodGet, "/products", "", true)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	var list []map[string]any
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0]["image"] != "url1" || list[0]["categories"] != "x" {
		t.Errorf("list = %v", list)
	}
}

func TestAuthRequirements(t *testing.T) {
	e := newTestEnv(t)
	id := domain.NewID()

	protected := []struct{ method, path string }{
		{http.MethodPost, "/products/"},
		{http.MethodGet, "/products/"},
		{http.MethodGet, "/products/" + id},
		{http.MethodPut, "/products/" + id},
		{http.MethodDelete, "/products/" + id},
		{http.MethodPost, "/products/offerImage"},
		{http.MethodDelete, "/products/offerImage/" + id},
	}
	for _, p := range protected {
		if status, _ := e.do(t, p.method, p.path, "", false); status != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", p.method, p.path, status)
		}
	}

	if status, _ := e.do(t, http.MethodGet, "/products/offerImage", "", false); status != http.StatusOK {
		t.Errorf("GET /products/offerImage = %d, want 200", status)
	}
	if status, _ := e.do(t, http.MethodGet, "/products/category/3", "", false); status != http.StatusNotFound {
		t.Errorf("GET /products/category/3 = %d, want 404", status)
	}
}

func TestProductClientErrors(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"invalid id on get", http.MethodGet, "/products/abc", "", http.StatusBadRequest, "Invalid product ID"},
		{"invalid id on update", http.MethodPut, "/products/abc", `{"productName":"B"}`, http.StatusBadRequest, "Invalid product ID"},
		{"invalid id on delete", http.MethodDelete, "/products/abc", "", http.StatusBadRequest, "Invalid product ID"},
		{"unknown id", http.MethodGet, "/products/" + domain.NewID(), "", http.StatusNotFound, "Product not found"},
		{"update unknown id", http.MethodPut, "/products/" + domain.NewID(), `{"productName":"B"}`, http.StatusNotFound, "Product not found"},
		{"delete unknown id", http.MethodDelete, "/products/" + domain.NewID(), `{"image":"url9"}`, http.StatusNotFound, "Product not found"},
		{"missing fields", http.MethodPost, "/products/", `{"productName":"A"}`, http.StatusBadRequest, "All fields are required"},
		{"empty create body", http.MethodPost, "/products/", "", http.StatusBadRequest, "All fields are required"},
		{"malformed json", http.MethodPost, "/products/", `{"productName":`, http.StatusBadRequest, "Invalid request body"},
		{"non numeric price", http.MethodPost, "/products/", `{"productName":"A","oldPrice":"cheap"}`, http.StatusBadRequest, "Prices must be numeric"},
		{"bad category path", http.MethodGet, "/products/category/abc", "", http.StatusBadRequest, "Invalid category ID"},
		{"empty category", http.MethodGet, "/products/category/5", "", http.StatusNotFound, "No products found for this category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := e.do(t, tt.method, tt.path, tt.body, true)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", status, tt.wantStatus, env.Message)
			}
			if env.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMessage)
			}
		})
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	e := newTestEnv(t)
	id := createProduct(t, e)

	status, env := e.do(t, http.MethodPut, "/products/"+id, `{"productImage":"url2","oldPrice":"150"}`, true)
	if status != http.StatusOK {
		t.Fatalf("update status = %d (%s)", status, env.Message)
	}
	if env.Message != "Product updated successfully" {
		t.Errorf("message = %q", env.Message)
	}

	var got struct {
		ProductImage string  `json:"productImage"`
		OldPrice     float64 `json:"oldPrice"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ProductImage != "url2" || got.OldPrice != 150 {
		t.Errorf("updated product = %+v", got)
	}

	if deleted := e.images.Deleted(); len(deleted) != 1 || deleted[0] != "url1" {
		t.Errorf("deleted images = %v, want [url1]", deleted)
	}

	// Same image again: no further storage call.
	if status, _ := e.do(t, http.MethodPut, "/products/"+id, `{"productImage":"url2"}`, true); status != http.StatusOK {
		t.Fatalf("second update status = %d", status)
	}
	if deleted := e.images.Deleted(); len(deleted) != 1 {
		t.Errorf("deleted images = %v, want exactly one deletion", deleted)
	}
}

func TestDeleteProduct(t *testing.T) {
	e := newTestEnv(t)
	id := createProduct(t, e)

	status, env := e.do(t, http.MethodDelete, "/products/"+id, `{"image":"url1"}`, true)
	if status != http.StatusOK || env.Message != "Product deleted successfully" {
		t.Fatalf("delete = %d %q", status, env.Message)
	}
	if deleted := e.images.Deleted(); len(deleted) != 1 || deleted[0] != "url1" {
		t.Errorf("deleted images = %v", deleted)
	}
	if status, _ := e.do(t, http.MethodGet, "/products/"+id, "", true); status != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", status)
	}
}

func TestCategoryListing(t *testing.T) {
	e := newTestEnv(t)
	createProduct(t, e)

	status, env := e.do(t, http.MethodGet, "/products/category/3", "", false)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var list []map[string]any
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0]["productCategoryId"] != float64(3) {
		t.Errorf("list = %v", list)
	}
}

func TestOfferImageEndpoints(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, http.MethodPost, "/products/offerImage", `{}`, true)
	if status != http.StatusBadRequest || env.Message != "Image URL is required" {
		t.Errorf("create without url = %d %q", status, env.Message)
	}

	status, env = e.do(t, http.MethodPost, "/products/offerImage", `{"imageUrl":"offer1"}`, true)
	if status != http.StatusCreated {
		t.Fatalf("create = %d %q", status, env.Message)
	}
	var created struct {
		ID       string `json:"id"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}

	_, env = e.do(t, http.MethodGet, "/products/offerImage", "", false)
	var list []struct {
		ID    string `json:"id"`
		Image string `json:"image"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].Image != "offer1" {
		t.Errorf("list = %+v", list)
	}

	status, env = e.do(t, http.MethodDelete, "/products/offerImage/"+domain.NewID(), `{"imageUrl":"offer1"}`, true)
	if status != http.StatusNotFound || env.Message != "Offer image not found" {
		t.Errorf("delete unknown = %d %q", status, env.Message)
	}

	status, env = e.do(t, http.MethodDelete, "/products/offerImage/nope", "", true)
	if status != http.StatusBadRequest || env.Message != "Invalid offer image ID" {
		t.Errorf("delete invalid id = %d %q", status, env.Message)
	}

	status, _ = e.do(t, http.MethodDelete, "/products/offerImage/"+created.ID, `{"imageUrl":"offer1"}`, true)
	if status != http.StatusOK {
		t.Errorf("delete = %d", status)
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}
