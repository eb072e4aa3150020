package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"petclinic-console/internal/handler"
	"petclinic-console/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubInventoryService struct {
	mock.Mock
}

func (s *stubInventoryService) List(ctx context.Context, q model.InventoryQuery) ([]model.Inventory, error) {
	args := s.Called(q)
	return args.Get(0).([]model.Inventory), args.Error(1)
}

func (s *stubInventoryService) GetByID(ctx context.Context, id string) (*model.Inventory, error) {
	return nil, model.ErrInventoryNotFound
}

func (s *stubInventoryService) Create(ctx context.Context, req *model.InventoryRequest) (*model.Inventory, error) {
	return &model.Inventory{InventoryID: "new"}, nil
}

func (s *stubInventoryService) Delete(ctx context.Context, id string) error {
	return s.Called(id).Error(0)
}

func (s *stubInventoryService) ListTypes(ctx context.Context) ([]model.InventoryType, error) {
	return []model.InventoryType{{TypeID: "t1", Type: "Medical"}}, nil
}

func (s *stubInventoryService) ListProducts(ctx context.Context, inventoryID string, q model.ProductQuery) ([]model.InventoryProduct, error) {
	return nil, nil
}

func (s *stubInventoryService) DeleteProduct(ctx context.Context, inventoryID, productID string) error {
	return s.Called(inventoryID, productID).Error(0)
}

type stubVisitService struct {
	mock.Mock
}

func (s *stubVisitService) List(ctx context.Context, practitionerID, ownerID string) ([]model.Visit, error) {
	args := s.Called(practitionerID, ownerID)
	return args.Get(0).([]model.Visit), args.Error(1)
}

func (s *stubVisitService) UpdateStatus(ctx context.Context, id string, status model.VisitStatus) (*model.Visit, error) {
	return &model.Visit{VisitID: id, Status: status}, nil
}

func (s *stubVisitService) Delete(ctx context.Context, id string) error {
	return nil
}

type stubClinicService struct{}

func (stubClinicService) ListVets(ctx context.Context) ([]model.Vet, error) {
	return []model.Vet{{VetID: "vet-1"}}, nil
}

func (stubClinicService) ListBills(ctx context.Context, status model.BillStatus) ([]model.Bill, error) {
	return []model.Bill{{BillID: "b1", BillStatus: status}}, nil
}

func newTestHandler(inv *stubInventoryService, visits *stubVisitService) http.Handler {
	logger := zerolog.Nop()
	return New(
		handler.NewInventoryHandler(inv, logger),
		handler.NewVisitHandler(visits, logger),
		handler.NewClinicHandler(stubClinicService{}, logger),
		"test-key",
		logger,
	)
}

func TestRouter_Health(t *testing.T) {
	h := newTestHandler(new(stubInventoryService), new(stubVisitService))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Routes(t *testing.T) {
	inv := new(stubInventoryService)
	inv.On("List", model.InventoryQuery{}).Return([]model.Inventory{}, nil)
	inv.On("Delete", "i1").Return(nil)
	inv.On("DeleteProduct", "i1", "p1").Return(nil)

	visits := new(stubVisitService)
	visits.On("List", "", "").Return([]model.Visit{}, nil)
	visits.On("List", "vet-1", "").Return([]model.Visit{}, nil)
	visits.On("List", "", "owner-1").Return([]model.Visit{}, nil)

	h := newTestHandler(inv, visits)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodGet, "/inventories", http.StatusOK},
		{http.MethodGet, "/inventories/types", http.StatusOK},
		{http.MethodDelete, "/inventories/i1", http.StatusNoContent},
		{http.MethodGet, "/inventories/i1/products", http.StatusOK},
		{http.MethodDelete, "/inventories/i1/products/p1", http.StatusNoContent},
		{http.MethodGet, "/visits", http.StatusOK},
		{http.MethodGet, "/visits/vets/vet-1", http.StatusOK},
		{http.MethodGet, "/visits/owners/owner-1", http.StatusOK},
		{http.MethodPut, "/visits/v1/status/CONFIRMED", http.StatusOK},
		{http.MethodDelete, "/visits/v1", http.StatusNoContent},
		{http.MethodGet, "/vets", http.StatusOK},
		{http.MethodGet, "/bills", http.StatusOK},
		{http.MethodGet, "/bills/paid", http.StatusOK},
		{http.MethodGet, "/bills/unpaid", http.StatusOK},
		{http.MethodGet, "/bills/overdue", http.StatusOK},
	}

	for _, prefix := range Prefixes {
		for _, tt := range tests {
			t.Run(tt.method+" "+prefix+tt.path, func(t *testing.T) {
				req := httptest.NewRequest(tt.method, prefix+tt.path, nil)
				req.Header.Set("X-API-Key", "test-key")
				w := httptest.NewRecorder()

				h.ServeHTTP(w, req)

				assert.Equal(t, tt.expectedStatus, w.Code)
			})
		}
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h := newTestHandler(new(stubInventoryService), new(stubVisitService))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gateway/inventories", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestHandler(new(stubInventoryService), new(stubVisitService))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
