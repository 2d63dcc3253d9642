package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

// recordingFarmService records call arguments for the farm handler tests.
type recordingFarmService struct {
	stubFarmService
	getID      string
	listPage   int
	listLimit  int
	createIn   *ports.CreateFarmInput
	updateID   string
	updateIn   *ports.FarmUpdate
	deleteID   string
	stuffUser  string
	stuffFarm  string
	stuffItems []string
	stuffErr   error
	farm       *domain.Farm
	farms      []*domain.Farm
	err        error
}

func (s *recordingFarmService) Get(_ context.Context, id string) (*domain.Farm, error) {
	s.getID = id
	return s.farm, s.err
}

func (s *recordingFarmService) List(_ context.Context, page, limit int) ([]*domain.Farm, error) {
	s.listPage, s.listLimit = page, limit
	return s.farms, s.err
}

func (s *recordingFarmService) Create(_ context.Context, input ports.CreateFarmInput) (*domain.Farm, error) {
	s.createIn = &input
	return s.farm, s.err
}

func (s *recordingFarmService) Update(_ context.Context, id string, upd ports.FarmUpdate) (*domain.Farm, error) {
	s.updateID, s.updateIn = id, &upd
	return s.farm, s.err
}

func (s *recordingFarmService) Delete(_ context.Context, id string) error {
	s.deleteID = id
	return s.err
}

func (s *recordingFarmService) UpdateStuff(_ context.Context, userID, farmID string, stuff []string) error {
	s.stuffUser, s.stuffFarm, s.stuffItems = userID, farmID, stuff
	return s.stuffErr
}

// ---------------------------------------------------------------------------

func TestFarmHandler_Get_ByID(t *testing.T) {
	svc := &recordingFarmService{farm: &domain.Farm{ID: "farm-1", Name: "north"}}
	h := NewFarmHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/farm?id=farm-1", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.getID != "farm-1" {
		t.Errorf("wrong id forwarded: %q", svc.getID)
	}
	if !strings.Contains(rec.Body.String(), "north") {
		t.Errorf("farm missing from body: %s", rec.Body.String())
	}
}

func TestFarmHandler_Get_List(t *testing.T) {
	svc := &recordingFarmService{farms: []*domain.Farm{{ID: "farm-1"}, {ID: "farm-2"}}}
	h := NewFarmHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/farm?page=2&limit=5", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.listPage != 2 || svc.listLimit != 5 {
		t.Errorf("pagination not forwarded: page=%d limit=%d", svc.listPage, svc.listLimit)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("want 200, got %d", rec.Code)
	}
}

func TestFarmHandler_Get_NotFound(t *testing.T) {
	svc := &recordingFarmService{err: domain.ErrFarmNotFound}
	h := NewFarmHandler(svc)

	c, _ := newJSONContext(http.MethodGet, "/farm?id=missing", "")
	if err := h.Get(c); !errors.Is(err, domain.ErrFarmNotFound) {
		t.Errorf("expected ErrFarmNotFound to propagate, got %v", err)
	}
}

func TestFarmHandler_Create(t *testing.T) {
	svc := &recordingFarmService{farm: &domain.Farm{ID: "farm-1", Name: "north"}}
	h := NewFarmHandler(svc)

	body := `{"name":"north","location":"hill","size":12.5,"stuff":["feed"]}`
	c, rec := newJSONContext(http.MethodPost, "/farm", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d", rec.Code)
	}
	if svc.createIn.Name != "north" || svc.createIn.Location != "hill" || svc.createIn.Size != 12.5 {
		t.Errorf("wrong input: %+v", svc.createIn)
	}
}

func TestFarmHandler_Create_Validation(t *testing.T) {
	svc := &recordingFarmService{}
	h := NewFarmHandler(svc)

	cases := []string{
		`{"location":"hill"}`,                        // no name
		`{"name":"north"}`,                           // no location
		`{"name":"north","location":"x","size":-2 }`, // negative size
	}
	for _, body := range cases {
		c, _ := newJSONContext(http.MethodPost, "/farm", body)
		assertHTTPError(t, h.Create(c), http.StatusBadRequest)
	}
	if svc.createIn != nil {
		t.Error("service must not be called on invalid input")
	}
}

func TestFarmHandler_Update(t *testing.T) {
	svc := &recordingFarmService{farm: &domain.Farm{ID: "farm-1", Name: "north ridge"}}
	h := NewFarmHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/farm?id=farm-1", `{"name":"north ridge"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if svc.updateID != "farm-1" {
		t.Errorf("wrong id: %q", svc.updateID)
	}
	if svc.updateIn.Name == nil || *svc.updateIn.Name != "north ridge" {
		t.Errorf("name not forwarded: %+v", svc.updateIn)
	}
	if svc.updateIn.Location != nil || svc.updateIn.Size != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestFarmHandler_Update_RequiresID(t *testing.T) {
	h := NewFarmHandler(&recordingFarmService{})

	c, _ := newJSONContext(http.MethodPut, "/farm", `{"name":"x"}`)
	assertHTTPError(t, h.Update(c), http.StatusBadRequest)
}

func TestFarmHandler_Delete(t *testing.T) {
	svc := &recordingFarmService{}
	h := NewFarmHandler(svc)

	c, rec := newJSONContext(http.MethodDelete, "/farm?id=farm-1", "")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.deleteID != "farm-1" {
		t.Errorf("wrong id: %q", svc.deleteID)
	}
	if !strings.Contains(rec.Body.String(), "Farm deleted successfully") {
		t.Errorf("wrong body: %s", rec.Body.String())
	}
}

func TestFarmHandler_Delete_RequiresID(t *testing.T) {
	h := NewFarmHandler(&recordingFarmService{})

	c, _ := newJSONContext(http.MethodDelete, "/farm", "")
	assertHTTPError(t, h.Delete(c), http.StatusBadRequest)
}

func TestFarmHandler_UpdateStuff(t *testing.T) {
	svc := &recordingFarmService{}
	h := NewFarmHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/farms/farm-1/stuff", `{"stuff":["feed","corn"]}`)
	c.SetParamNames("id")
	c.SetParamValues("farm-1")
	c.Set("user_id", "user-1")

	if err := h.UpdateStuff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if svc.stuffUser != "user-1" || svc.stuffFarm != "farm-1" || len(svc.stuffItems) != 2 {
		t.Errorf("wrong call: user=%q farm=%q items=%v", svc.stuffUser, svc.stuffFarm, svc.stuffItems)
	}
}

func TestFarmHandler_UpdateStuff_NotAssigned(t *testing.T) {
	svc := &recordingFarmService{stuffErr: domain.ErrNotAssigned}
	h := NewFarmHandler(svc)

	c, _ := newJSONContext(http.MethodPut, "/farms/farm-2/stuff", `{"stuff":["corn"]}`)
	c.SetParamNames("id")
	c.SetParamValues("farm-2")
	c.Set("user_id", "user-1")

	if err := h.UpdateStuff(c); !errors.Is(err, domain.ErrNotAssigned) {
		t.Errorf("expected ErrNotAssigned to propagate, got %v", err)
	}
}

func TestFarmHandler_UpdateStuff_NoSession(t *testing.T) {
	h := NewFarmHandler(&recordingFarmService{})

	c, _ := newJSONContext(http.MethodPut, "/farms/farm-1/stuff", `{"stuff":["corn"]}`)
	assertHTTPError(t, h.UpdateStuff(c), http.StatusUnauthorized)
}

func TestFarmHandler_ListMine(t *testing.T) {
	h := NewFarmHandler(&recordingFarmService{})

	c, _ := newJSONContext(http.MethodGet, "/farms", "")
	assertHTTPError(t, h.ListMine(c), http.StatusUnauthorized)
}
