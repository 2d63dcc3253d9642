package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type FarmService struct {
	farms   ports.FarmRepository
	users   ports.UserRepository
	entries ports.InventoryRepository
	logger  zerolog.Logger
}

func NewFarmService(farms ports.FarmRepository, users ports.UserRepository, entries ports.InventoryRepository, logger zerolog.Logger) *FarmService {
	return &FarmService{farms: farms, users: users, entries: entries, logger: logger}
}

func (s *FarmService) Create(ctx context.Context, input ports.CreateFarmInput) (*domain.Farm, error) {
	farm := &domain.Farm{
		Name:      input.Name,
		Location:  input.Location,
		Size:      input.Size,
		Stuff:     input.Stuff,
		ManagerID: input.ManagerID,
	}

	created, err := s.farms.Create(ctx, farm)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create farm")
		return nil, err
	}

	s.logger.Info().Str("farm_id", created.ID).Str("name", created.Name).Msg("farm created")
	return created, nil
}

func (s *FarmService) Get(ctx context.Context, id string) (*domain.Farm, error) {
	return s.farms.FindByID(ctx, id)
}

func (s *FarmService) List(ctx context.Context, page, limit int) ([]*domain.Farm, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.farms.List(ctx, page, limit)
}

func (s *FarmService) Update(ctx context.Context, id string, upd ports.FarmUpdate) (*domain.Farm, error) {
	return s.farms.Update(ctx, id, upd)
}

// Delete removes the farm and cascades so that nothing keeps pointing at a
// dead farm id: assignment references are pulled from every user and the
// farm's inventory entries are removed.
func (s *FarmService) Delete(ctx context.Context, id string) error {
	if err := s.farms.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.users.PullFarm(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("farm_id", id).Msg("failed to pull farm from user assignments")
		return fmt.Errorf("cascade farm delete: %w", err)
	}
	if err := s.entries.DeleteByFarm(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("farm_id", id).Msg("failed to delete farm inventory entries")
		return fmt.Errorf("cascade farm delete: %w", err)
	}

	s.logger.Info().Str("farm_id", id).Msg("farm deleted")
	return nil
}

func (s *FarmService) ListForUser(ctx context.Context, userID string) ([]*domain.Farm, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.AssignedFarms) == 0 {
		return nil, domain.ErrNoFarmAssigned
	}

	farms, err := s.farms.FindByIDs(ctx, user.AssignedFarms)
	if err != nil {
		return nil, err
	}
	if len(farms) == 0 {
		return nil, domain.ErrFarmNotFound
	}
	return farms, nil
}

func (s *FarmService) FirstForUser(ctx context.Context, userID string) (*domain.Farm, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.AssignedFarms) == 0 {
		return nil, domain.ErrNoFarmAssigned
	}
	return s.farms.FindByID(ctx, user.AssignedFarms[0])
}

// UpdateStuff replaces the farm's item catalog. Assignment is checked first;
// an unassigned caller gets ErrNotAssigned, which surfaces as 404 so the
// endpoint does not leak which farms exist.
func (s *FarmService) UpdateStuff(ctx context.Context, userID, farmID string, stuff []string) error {
	assigned, err := s.users.IsAssigned(ctx, userID, farmID)
	if err != nil {
		return err
	}
	if !assigned {
		return domain.ErrNotAssigned
	}

	if err := s.farms.UpdateStuff(ctx, farmID, stuff); err != nil {
		return err
	}

	s.logger.Info().Str("farm_id", farmID).Str("user_id", userID).Int("items", len(stuff)).Msg("farm catalog updated")
	return nil
}
