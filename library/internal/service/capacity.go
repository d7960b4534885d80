package service

import (
	"context"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/model"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (s *Service) OccupiedSeats(ctx context.Context, libraryID uuid.UUID) (int, error) {
	if _, err := getLibrary(ctx, s.repo, libraryID); err != nil {
		return 0, err
	}
	return s.repo.OccupiedSeats(ctx, libraryID, nil)
}

func (s *Service) HasCapacity(ctx context.Context, libraryID uuid.UUID) (bool, error) {
	lib, err := getLibrary(ctx, s.repo, libraryID)
	if err != nil {
		return false, err
	}
	occupied, err := s.repo.OccupiedSeats(ctx, libraryID, nil)
	if err != nil {
		return false, err
	}
	return occupied < lib.TotalSeats, nil
}

// reserveSeat must run inside a transaction. The library lock is held until commit.
func reserveSeat(ctx context.Context, q repository.Queries, lib model.Library, exclude *uuid.UUID) error {
	if err := q.LockLibrary(ctx, lib.ID); err != nil {
		return err
	}
	occupied, err := q.OccupiedSeats(ctx, lib.ID, exclude)
	if err != nil {
		return err
	}
	if occupied >= lib.TotalSeats {
		return errs.Newf(errs.ErrCapacityExceeded, "no seats available in this library")
	}
	return nil
}

func getLibrary(ctx context.Context, q repository.Queries, id uuid.UUID) (model.Library, error) {
	lib, err := q.GetLibrary(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Library{}, errs.Newf(errs.ErrNotFound, "library not found")
		}
		return model.Library{}, err
	}
	return lib, nil
}

// getPlan returns the plan only when it is active and belongs to the library.
func getPlan(ctx context.Context, q repository.Queries, libraryID, planID uuid.UUID) (model.SubscriptionPlan, error) {
	plan, err := q.GetPlan(ctx, planID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.SubscriptionPlan{}, err
	}
	if err != nil || plan.LibraryID != libraryID || !plan.IsActive {
		return model.SubscriptionPlan{}, errs.Newf(errs.ErrNotFound, "subscription plan not found or inactive")
	}
	return plan, nil
}

func optionalPlan(ctx context.Context, q repository.Queries, libraryID uuid.UUID, planID *uuid.UUID) (*model.SubscriptionPlan, error) {
	if planID == nil {
		return nil, nil
	}
	plan, err := getPlan(ctx, q, libraryID, *planID)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
