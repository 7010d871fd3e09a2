package visit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/xspace-labs/xspace-backend/internal/model/catalog"
	visitservice "github.com/xspace-labs/xspace-backend/internal/service/visit"
)

func setupRouter() (*chi.Mux, *visitservice.Service) {
	store := catalog.NewMemoryStore(catalog.Seed())
	svc := visitservice.NewService(store, decimal.NewFromInt(10), nil)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestOpenVisit(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/visits", map[string]string{"clientName": "Ahmed"})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var opened struct {
		ID         string `json:"id"`
		ClientName string `json:"clientName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&opened); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if opened.ID == "" {
		t.Fatal("expected a visit id")
	}
	if opened.ClientName != "Ahmed" {
		t.Fatalf("unexpected client name: %s", opened.ClientName)
	}
}

func TestOpenVisitMissingClientName(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/visits", map[string]string{})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAddProductToVisit(t *testing.T) {
	r, svc := setupRouter()
	opened, err := svc.Open(context.Background(), "Ahmed")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}

	resp := postJSON(r, "/visits/"+opened.ID+"/products", map[string]any{
		"productId": "1",
		"quantity":  2,
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Lines []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Lines) != 1 || body.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", body.Lines)
	}
}

func TestAddProductUnknownVisit(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/visits/missing/products", map[string]any{"productId": "1"})

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAdjustQuantityClamps(t *testing.T) {
	r, svc := setupRouter()
	ctx := context.Background()
	opened, err := svc.Open(ctx, "Ahmed")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	if _, err := svc.AddProduct(ctx, opened.ID, "1", 2); err != nil {
		t.Fatalf("AddProduct err: %v", err)
	}

	payload, _ := json.Marshal(map[string]int{"delta": -10})
	req := httptest.NewRequest(http.MethodPatch, "/visits/"+opened.ID+"/products/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Lines []struct {
			Quantity int `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Lines) != 1 || body.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %+v", body.Lines)
	}
}

func TestCloseVisitTwice(t *testing.T) {
	r, svc := setupRouter()
	opened, err := svc.Open(context.Background(), "Ahmed")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}

	resp := postJSON(r, "/visits/"+opened.ID+"/close", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var closed struct {
		Receipt *struct {
			Total json.Number `json:"total"`
		} `json:"receipt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&closed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if closed.Receipt == nil {
		t.Fatal("expected a receipt on the closed visit")
	}

	resp = postJSON(r, "/visits/"+opened.ID+"/close", nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second close, got %d", resp.Code)
	}
}

func TestActiveVisit(t *testing.T) {
	r, svc := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/visits/active", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no active visit, got %d", resp.Code)
	}

	opened, err := svc.Open(context.Background(), "Ahmed")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/visits/active", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Visit struct {
			ID string `json:"id"`
		} `json:"visit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Visit.ID != opened.ID {
		t.Fatalf("unexpected active visit: got %s want %s", body.Visit.ID, opened.ID)
	}
}
