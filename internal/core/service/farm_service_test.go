package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type stubFarmRepo struct {
	byID      map[string]*domain.Farm
	order     []string
	nextID    int
	listPage  int
	listLimit int
}

func newStubFarmRepo() *stubFarmRepo {
	return &stubFarmRepo{byID: make(map[string]*domain.Farm)}
}

func (r *stubFarmRepo) Create(_ context.Context, f *domain.Farm) (*domain.Farm, error) {
	clone := *f
	r.nextID++
	clone.ID = "farm-" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubFarmRepo) FindByID(_ context.Context, id string) (*domain.Farm, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFarmRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Farm, error) {
	var out []*domain.Farm
	for _, id := range ids {
		if f, ok := r.byID[id]; ok {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFarmRepo) List(_ context.Context, page, limit int) ([]*domain.Farm, error) {
	r.listPage, r.listLimit = page, limit
	start := (page - 1) * limit
	if start >= len(r.order) {
		return nil, nil
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	out := make([]*domain.Farm, 0, end-start)
	for _, id := range r.order[start:end] {
		clone := *r.byID[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubFarmRepo) Update(_ context.Context, id string, upd ports.FarmUpdate) (*domain.Farm, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	if upd.Name != nil {
		f.Name = *upd.Name
	}
	if upd.Location != nil {
		f.Location = *upd.Location
	}
	if upd.Size != nil {
		f.Size = *upd.Size
	}
	if upd.Stuff != nil {
		f.Stuff = *upd.Stuff
	}
	if upd.ManagerID != nil {
		f.ManagerID = *upd.ManagerID
	}
	clone := *f
	return &clone, nil
}

func (r *stubFarmRepo) UpdateStuff(_ context.Context, id string, stuff []string) error {
	f, ok := r.byID[id]
	if !ok {
		return domain.ErrFarmNotFound
	}
	f.Stuff = stuff
	return nil
}

func (r *stubFarmRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrFarmNotFound
	}
	delete(r.byID, id)
	for i, fid := range r.order {
		if fid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func newFarmFixture(t *testing.T) (*FarmService, *stubFarmRepo, *stubUserRepo, *stubInventoryRepo) {
	t.Helper()
	farms := newStubFarmRepo()
	users := newStubUserRepo()
	entries := newStubInventoryRepo()
	return NewFarmService(farms, users, entries, discardLogger), farms, users, entries
}

// ---------------------------------------------------------------------------

func TestFarmService_List_ClampsPagination(t *testing.T) {
	svc, farms, _, _ := newFarmFixture(t)

	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageLimit},
		{-3, -1, 1, defaultPageLimit},
		{2, 50, 2, 50},
		{1, 1000, 1, maxPageLimit},
	}
	for _, tc := range cases {
		if _, err := svc.List(context.Background(), tc.page, tc.limit); err != nil {
			t.Fatalf("page=%d limit=%d: %v", tc.page, tc.limit, err)
		}
		if farms.listPage != tc.wantPage || farms.listLimit != tc.wantLimit {
			t.Errorf("page=%d limit=%d: repo saw page=%d limit=%d, want page=%d limit=%d",
				tc.page, tc.limit, farms.listPage, farms.listLimit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestFarmService_List_Pages(t *testing.T) {
	svc, _, _, _ := newFarmFixture(t)

	for i := 0; i < 15; i++ {
		_, _ = svc.Create(context.Background(), ports.CreateFarmInput{Name: "farm " + strconv.Itoa(i)})
	}

	first, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	second, err := svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(first) != 10 || len(second) != 5 {
		t.Errorf("page sizes: got %d and %d, want 10 and 5", len(first), len(second))
	}
	if first[0].Name != "farm 0" || second[0].Name != "farm 10" {
		t.Errorf("page order wrong: %q / %q", first[0].Name, second[0].Name)
	}
}

func TestFarmService_Delete_Cascades(t *testing.T) {
	svc, farms, users, entries := newFarmFixture(t)

	farm, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "north"})
	seedUser(t, users, domain.User{Name: "Bob", Email: "bob@example.com", AssignedFarms: []string{farm.ID}}, "pw")
	_, _ = entries.Insert(context.Background(), &domain.InventoryEntry{FarmID: farm.ID})

	if err := svc.Delete(context.Background(), farm.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := farms.byID[farm.ID]; ok {
		t.Error("farm still present")
	}
	if len(users.pullFarmCalls) != 1 || users.pullFarmCalls[0] != farm.ID {
		t.Errorf("assignment cleanup not performed: %v", users.pullFarmCalls)
	}
	for _, e := range entries.byID {
		if e.FarmID == farm.ID {
			t.Error("inventory entry survived farm deletion")
		}
	}
}

func TestFarmService_Delete_UnknownFarm(t *testing.T) {
	svc, _, users, _ := newFarmFixture(t)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrFarmNotFound) {
		t.Fatalf("expected ErrFarmNotFound, got %v", err)
	}
	if len(users.pullFarmCalls) != 0 {
		t.Error("cascade must not run when the farm does not exist")
	}
}

func TestFarmService_ListForUser(t *testing.T) {
	svc, _, users, _ := newFarmFixture(t)

	a, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "north"})
	b, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "south"})
	_, _ = svc.Create(context.Background(), ports.CreateFarmInput{Name: "east"})

	user := seedUser(t, users, domain.User{Name: "Bob", Email: "bob@example.com", AssignedFarms: []string{a.ID, b.ID}}, "pw")

	farms, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(farms) != 2 {
		t.Fatalf("want 2 farms, got %d", len(farms))
	}
}

func TestFarmService_ListForUser_NoAssignment(t *testing.T) {
	svc, _, users, _ := newFarmFixture(t)

	user := seedUser(t, users, domain.User{Name: "Bob", Email: "bob@example.com"}, "pw")

	_, err := svc.ListForUser(context.Background(), user.ID)
	if !errors.Is(err, domain.ErrNoFarmAssigned) {
		t.Errorf("expected ErrNoFarmAssigned, got %v", err)
	}
}

func TestFarmService_FirstForUser(t *testing.T) {
	svc, _, users, _ := newFarmFixture(t)

	a, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "north"})
	b, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "south"})
	user := seedUser(t, users, domain.User{Name: "Bob", Email: "bob@example.com", AssignedFarms: []string{a.ID, b.ID}}, "pw")

	farm, err := svc.FirstForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farm.ID != a.ID {
		t.Errorf("want primary farm %s, got %s", a.ID, farm.ID)
	}
}

func TestFarmService_UpdateStuff_RequiresAssignment(t *testing.T) {
	svc, farms, users, _ := newFarmFixture(t)

	assignedFarm, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "north", Stuff: []string{"feed"}})
	otherFarm, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "south", Stuff: []string{"feed"}})
	user := seedUser(t, users, domain.User{Name: "Bob", Email: "bob@example.com", AssignedFarms: []string{assignedFarm.ID}}, "pw")

	if err := svc.UpdateStuff(context.Background(), user.ID, assignedFarm.ID, []string{"feed", "corn"}); err != nil {
		t.Fatalf("assigned farm: %v", err)
	}
	if got := farms.byID[assignedFarm.ID].Stuff; len(got) != 2 {
		t.Errorf("catalog not replaced: %v", got)
	}

	err := svc.UpdateStuff(context.Background(), user.ID, otherFarm.ID, []string{"corn"})
	if !errors.Is(err, domain.ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
	if got := farms.byID[otherFarm.ID].Stuff; len(got) != 1 || got[0] != "feed" {
		t.Errorf("unassigned farm's catalog changed: %v", got)
	}
}

func TestFarmService_Update_Partial(t *testing.T) {
	svc, _, _, _ := newFarmFixture(t)

	farm, _ := svc.Create(context.Background(), ports.CreateFarmInput{Name: "north", Location: "hill", Size: 12.5})

	name := "north ridge"
	updated, err := svc.Update(context.Background(), farm.ID, ports.FarmUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "north ridge" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.Location != "hill" || updated.Size != 12.5 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}
