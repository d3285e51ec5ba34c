package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/repository/product"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProducts struct {
	items      []domain.Product
	total      int
	listErr    error
	lastParams product.ListParams

	detail    *domain.Product
	detailErr error

	variant    *domain.Variant
	variantErr error
}

func (s *stubProducts) List(_ context.Context, params product.ListParams) ([]domain.Product, int, error) {
	s.lastParams = params
	return s.items, s.total, s.listErr
}

func (s *stubProducts) GetByID(context.Context, int64) (*domain.Product, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	if s.detail == nil {
		return nil, domain.ErrNotFound
	}
	return s.detail, nil
}

func (s *stubProducts) GetVariant(context.Context, int64, string) (*domain.Variant, error) {
	return s.variant, s.variantErr
}

type stubCategories struct {
	categories []domain.Category
	err        error
}

func (s *stubCategories) List(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

type stubLocations struct {
	locations []domain.Location
	shipping  []domain.ShippingMethod
	lastID    int64
	err       error
}

func (s *stubLocations) List(context.Context) ([]domain.Location, error) {
	return s.locations, s.err
}

func (s *stubLocations) ListShipping(_ context.Context, locationID int64) ([]domain.ShippingMethod, error) {
	s.lastID = locationID
	return s.shipping, s.err
}

type stubOrders struct {
	created domain.Order
	err     error
	got     *domain.Order
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	s.got = &o
	if s.err != nil {
		return domain.Order{}, s.err
	}
	created := o
	created.ID = s.created.ID
	return created, nil
}

func testRouter(deps Deps) *gin.Engine {
	return buildRouter(log.New(io.Discard, "", 0), deps, nil)
}

func doRequest(t *testing.T, router *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestListProductsForwardsQuery(t *testing.T) {
	products := &stubProducts{
		items: []domain.Product{{ID: 7, Name: "mug", Price: 150, Quantity: 3}},
		total: 41,
	}
	router := testRouter(Deps{Products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/products?page=2&category=3&order=asc&q=mug", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	want := product.ListParams{Page: 2, PerPage: 20, CategoryID: 3, PriceOrder: domain.PriceOrderAsc, NameQuery: "mug"}
	if products.lastParams != want {
		t.Errorf("params = %+v, want %+v", products.lastParams, want)
	}

	var page domain.FeedPage
	decodeData(t, rec, &page)
	if len(page.Items) != 1 || page.Items[0].ID != 7 {
		t.Errorf("items = %+v", page.Items)
	}
	if page.CurrentPage != 2 {
		t.Errorf("currentPage = %d, want 2", page.CurrentPage)
	}
	// 41 matches at 20 per page round up to 3 pages.
	if page.LastPage != 3 {
		t.Errorf("lastPage = %d, want 3", page.LastPage)
	}
}

func TestListProductsEmptyCatalog(t *testing.T) {
	router := testRouter(Deps{Products: &stubProducts{}})

	rec := doRequest(t, router, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page domain.FeedPage
	decodeData(t, rec, &page)
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("items = %#v, want empty slice", page.Items)
	}
	if page.CurrentPage != 1 || page.LastPage != 1 {
		t.Errorf("pages = %d/%d, want 1/1", page.CurrentPage, page.LastPage)
	}
}

func TestListProductsRejectsBadOrder(t *testing.T) {
	router := testRouter(Deps{Products: &stubProducts{}})
	rec := doRequest(t, router, http.MethodGet, "/api/products?order=upward", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetProduct(t *testing.T) {
	products := &stubProducts{detail: &domain.Product{
		ID:          11,
		Name:        "tee",
		Price:       1900,
		HasVariant:  true,
		Variants:    []domain.VariantGroup{{Name: "Size", Options: []string{"S", "M"}}},
		Description: "plain cotton tee",
	}}
	router := testRouter(Deps{Products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/products/11", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p domain.Product
	decodeData(t, rec, &p)
	if p.ID != 11 || p.Name != "tee" || !p.HasVariant {
		t.Errorf("product = %+v", p)
	}
	if len(p.Variants) != 1 || p.Variants[0].Name != "Size" {
		t.Errorf("variant groups = %+v", p.Variants)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := testRouter(Deps{Products: &stubProducts{}})
	rec := doRequest(t, router, http.MethodGet, "/api/products/404", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetVariant(t *testing.T) {
	products := &stubProducts{variant: &domain.Variant{ID: 4, Name: "large", Price: 90, Quantity: 2}}
	router := testRouter(Deps{Products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/products/11/variant?option=large", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var v domain.Variant
	decodeData(t, rec, &v)
	if v.ID != 4 || v.Name != "large" {
		t.Errorf("variant = %+v", v)
	}
}

func TestGetVariantNotFound(t *testing.T) {
	products := &stubProducts{variantErr: domain.ErrNotFound}
	router := testRouter(Deps{Products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/products/11/variant?option=huge", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetVariantRequiresOption(t *testing.T) {
	router := testRouter(Deps{Products: &stubProducts{}})
	rec := doRequest(t, router, http.MethodGet, "/api/products/11/variant", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListCategories(t *testing.T) {
	categories := &stubCategories{categories: []domain.Category{{ID: 1, Name: "shoes"}, {ID: 2, Name: "shirts"}}}
	router := testRouter(Deps{Categories: categories})

	rec := doRequest(t, router, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []domain.Category
	decodeData(t, rec, &got)
	if len(got) != 2 || got[0].Name != "shoes" {
		t.Errorf("categories = %+v", got)
	}
}

func TestListShippingUsesLocationID(t *testing.T) {
	locations := &stubLocations{shipping: []domain.ShippingMethod{{ID: 1, Name: "courier", Price: 30}}}
	router := testRouter(Deps{Locations: locations})

	rec := doRequest(t, router, http.MethodGet, "/api/locations/5/shipping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if locations.lastID != 5 {
		t.Errorf("locationID = %d, want 5", locations.lastID)
	}
	var got []domain.ShippingMethod
	decodeData(t, rec, &got)
	if len(got) != 1 || got[0].Name != "courier" {
		t.Errorf("shipping = %+v", got)
	}
}

func TestCreateOrder(t *testing.T) {
	orders := &stubOrders{created: domain.Order{ID: 99}}
	router := testRouter(Deps{Orders: orders})

	payload := domain.Order{
		Name:       "Sara",
		Email:      "sara@example.com",
		Phone:      "0912345678",
		Address:    "12 Main St",
		LocationID: 1,
		ShippingID: 2,
		Lines:      []domain.OrderLine{{ProductID: 7, Count: 2}},
	}
	body, _ := json.Marshal(payload)

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if orders.got == nil || len(orders.got.Lines) != 1 || orders.got.Lines[0].ProductID != 7 {
		t.Errorf("stored order = %+v", orders.got)
	}
	var created domain.Order
	decodeData(t, rec, &created)
	if created.ID != 99 {
		t.Errorf("created.ID = %d, want 99", created.ID)
	}
}

func TestCreateOrderRejectsEmptyLines(t *testing.T) {
	orders := &stubOrders{}
	router := testRouter(Deps{Orders: orders})

	body, _ := json.Marshal(domain.Order{Name: "Sara"})
	rec := doRequest(t, router, http.MethodPost, "/api/checkout", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if orders.got != nil {
		t.Errorf("order reached repository despite empty lines")
	}
}

func TestCreateOrderOutOfStock(t *testing.T) {
	orders := &stubOrders{err: domain.ErrOutOfStock}
	router := testRouter(Deps{Orders: orders})

	body, _ := json.Marshal(domain.Order{
		Name:  "Sara",
		Lines: []domain.OrderLine{{ProductID: 7, Count: 50}},
	})
	rec := doRequest(t, router, http.MethodPost, "/api/checkout", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}
