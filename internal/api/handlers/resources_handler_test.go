package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/techstock/engine/internal/api/types"
	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/services"
	appErr "github.com/techstock/engine/pkg/errors"
)

type stubResourceService struct {
	services.ResourceService

	listFn func(ctx context.Context, filters query.Filters, sort query.SortParams, page query.PageParams) ([]models.Resource, query.Pagination, error)
	getFn  func(ctx context.Context, id int64) (*models.Resource, error)
}

func (s *stubResourceService) ListResources(ctx context.Context, filters query.Filters, sort query.SortParams, page query.PageParams) ([]models.Resource, query.Pagination, error) {
	return s.listFn(ctx, filters, sort, page)
}

func (s *stubResourceService) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	return s.getFn(ctx, id)
}

func newValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func TestListResources_QueryParsing(t *testing.T) {
	var gotFilters query.Filters
	var gotSort query.SortParams
	var gotPage query.PageParams

	svc := &stubResourceService{
		listFn: func(ctx context.Context, filters query.Filters, sort query.SortParams, page query.PageParams) ([]models.Resource, query.Pagination, error) {
			gotFilters, gotSort, gotPage = filters, sort, page
			return []models.Resource{}, query.NewPagination(2, 10, 35), nil
		},
	}
	h := NewResourcesHandler(svc, newValidate())

	url := "/api/v1/resources?page=2&size=10&resource_type=virtual&location=westeurope" +
		"&subscription_id=7&search=vm&tags=Env:prod&sort_field=name&sort_direction=desc"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	require.NotNil(t, gotFilters.Type)
	require.Equal(t, "virtual", *gotFilters.Type)
	require.Equal(t, "westeurope", *gotFilters.Location)
	require.Equal(t, int64(7), *gotFilters.SubscriptionID)
	require.Equal(t, "vm", *gotFilters.Search)
	require.Equal(t, "Env:prod", *gotFilters.Tags)
	require.Nil(t, gotFilters.Vendor)

	require.Equal(t, "name", *gotSort.Field)
	require.Equal(t, query.Descending, *gotSort.Direction)

	require.Equal(t, 2, *gotPage.Page)
	require.Equal(t, 10, *gotPage.Size)

	var body types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotNil(t, body.Meta)
	require.Equal(t, int64(35), body.Meta.Total)
	require.Equal(t, 4, body.Meta.TotalPages)
}

func TestGetResource_BadID(t *testing.T) {
	h := NewResourcesHandler(&stubResourceService{}, newValidate())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/abc", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Get(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetResource_NotFound(t *testing.T) {
	svc := &stubResourceService{
		getFn: func(ctx context.Context, id int64) (*models.Resource, error) {
			return nil, appErr.NotFound("Resource", id)
		},
	}
	h := NewResourcesHandler(svc, newValidate())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/5", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "5")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Get(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.NotNil(t, body.Error)
}

func TestCreateResource_InvalidBody(t *testing.T) {
	h := NewResourcesHandler(&stubResourceService{}, newValidate())

	// missing required fields fails validation before the service is called
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources", strings.NewReader(`{"name":"vm-1"}`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/resources", strings.NewReader("{broken"))
	rr = httptest.NewRecorder()
	h.Create(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
