package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
	"github.com/chiraitori/farm-management-api/internal/export"
)

type InventoryService struct {
	repo   ports.InventoryRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.InventoryRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

// Upload persists a new inventory entry. A missing upload date defaults to
// the current UTC instant.
func (s *InventoryService) Upload(ctx context.Context, input ports.UploadEntryInput) (*domain.InventoryEntry, error) {
	if input.FarmID == "" {
		return nil, domain.ErrMissingSelector
	}

	uploadDate := time.Now().UTC()
	if input.UploadDate != nil {
		uploadDate = input.UploadDate.UTC()
	}

	entry := &domain.InventoryEntry{
		FarmID:     input.FarmID,
		Items:      input.Items,
		UploadDate: uploadDate,
	}

	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("farm_id", input.FarmID).Msg("failed to upload inventory")
		return nil, err
	}

	s.logger.Info().Str("entry_id", created.ID).Str("farm_id", created.FarmID).Int("items", len(created.Items)).Msg("inventory uploaded")
	return created, nil
}

// Update reconciles an existing entry in one atomic find-and-modify.
//
// Selector precedence is fixed: a well-formed entry id wins and a miss on it
// is final (no farm-id fallback); otherwise the newest entry of the given
// farm is targeted. The stored upload date survives unless the caller
// supplies a new one.
func (s *InventoryService) Update(ctx context.Context, input ports.UpdateEntryInput) (*domain.InventoryEntry, error) {
	if input.EntryID == "" && input.FarmID == "" {
		return nil, domain.ErrMissingSelector
	}

	upd := ports.EntryUpdate{
		Items:     input.Items,
		UpdatedBy: input.EditorID,
		UpdatedAt: time.Now().UTC(),
	}
	if input.UploadDate != nil {
		d := input.UploadDate.UTC()
		upd.UploadDate = &d
	}
	if input.FarmID != "" {
		farmID := input.FarmID
		upd.FarmID = &farmID
	}

	var (
		updated *domain.InventoryEntry
		err     error
	)
	if domain.IsValidID(input.EntryID) {
		updated, err = s.repo.UpdateByID(ctx, input.EntryID, upd)
	} else if input.FarmID != "" {
		updated, err = s.repo.UpdateByFarm(ctx, input.FarmID, upd)
	} else {
		return nil, domain.ErrMissingSelector
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}

	s.logger.Info().Str("entry_id", updated.ID).Str("farm_id", updated.FarmID).Msg("inventory updated")
	return updated, nil
}

// Calendar groups the month's entries by calendar day.
func (s *InventoryService) Calendar(ctx context.Context, year, month int) (map[string][]ports.CalendarEntry, error) {
	entries, err := s.monthEntries(ctx, year, month)
	if err != nil {
		return nil, err
	}

	calendar := make(map[string][]ports.CalendarEntry)
	for _, e := range entries {
		day := e.Day()
		calendar[day] = append(calendar[day], ports.CalendarEntry{
			FarmID: e.FarmID,
			Items:  e.Items,
		})
	}
	return calendar, nil
}

// ExportMonth renders the month's entries as an xlsx report.
func (s *InventoryService) ExportMonth(ctx context.Context, year, month int) ([]byte, error) {
	entries, err := s.monthEntries(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return export.MonthReport(year, month, entries)
}

func (s *InventoryService) monthEntries(ctx context.Context, year, month int) ([]*domain.InventoryEntry, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}

	from, to := monthRange(year, month)
	entries, err := s.repo.FindRange(ctx, from, to)
	if err != nil {
		s.logger.Error().Err(err).Int("year", year).Int("month", month).Msg("failed to fetch month entries")
		return nil, err
	}
	return entries, nil
}

// monthRange returns the inclusive UTC bounds of a calendar month. Day 0 of
// the following month normalizes to the month's last day, which handles
// 28/29/30/31-day months and leap years.
func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 999_000_000, time.UTC)
	return from, to
}
