package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/internal/catalog"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	products   []catalog.ProductDTO
	product    *catalog.ProductDTO
	categories []string
	err        error

	gotFilter   catalog.ListFilter
	gotFeatured int
}

func (s *stubCatalogService) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.ProductDTO, error) {
	s.gotFilter = filter
	return s.products, s.err
}

func (s *stubCatalogService) Featured(ctx context.Context, n int) ([]catalog.ProductDTO, error) {
	s.gotFeatured = n
	return s.products, s.err
}

func (s *stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubCatalogService) Create(ctx context.Context, dto catalog.CreateProductDTO) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) Update(ctx context.Context, id uuid.UUID, dto catalog.UpdateProductDTO) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestCatalogListPassesFilters(t *testing.T) {
	stub := &stubCatalogService{products: []catalog.ProductDTO{{ID: uuid.New(), Name: "Trowel"}}}
	handler := CatalogList(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?category=tools&q=trow&limit=10", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotFilter.Category != "tools" || stub.gotFilter.Search != "trow" || stub.gotFilter.Limit != 10 {
		t.Fatalf("unexpected filter: %+v", stub.gotFilter)
	}

	var envelope struct {
		Data []catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Trowel" {
		t.Fatalf("unexpected products: %+v", envelope.Data)
	}
}

func TestCatalogListRejectsBadLimit(t *testing.T) {
	handler := CatalogList(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?limit=banana", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogFeaturedDefaultsCount(t *testing.T) {
	stub := &stubCatalogService{}
	handler := CatalogFeatured(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/featured", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotFeatured != catalog.DefaultFeaturedCount {
		t.Fatalf("expected default featured count, got %d", stub.gotFeatured)
	}
}

func TestCatalogDetailInvalidID(t *testing.T) {
	handler := CatalogDetail(&stubCatalogService{}, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogDetailNotFound(t *testing.T) {
	stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := CatalogDetail(stub, nil)

	id := uuid.New()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", id.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/"+id.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCatalogCategories(t *testing.T) {
	stub := &stubCatalogService{categories: []string{"seeds", "tools"}}
	handler := CatalogCategories(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/categories", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[1] != "tools" {
		t.Fatalf("unexpected categories: %v", envelope.Data)
	}
}
