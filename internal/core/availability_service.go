package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// dateLayout is the wire format for individual calendar days.
const dateLayout = "2006-01-02"

// ErrInvalidDateRange is returned for unparseable or inverted date ranges.
var ErrInvalidDateRange = errors.New("invalid date range")

// availabilityService implements the AvailabilityService interface.
type availabilityService struct {
	availabilityRepo db.AvailabilityRepository
	logger           *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService instance.
func NewAvailabilityService(availabilityRepo db.AvailabilityRepository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// expandRange expands [from, to] into individual day strings grouped by
// year-month, so each service needs one document read per distinct month
// rather than one per day.
func expandRange(from, to string) (map[string][]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateRange, from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateRange, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %q is before %q", ErrInvalidDateRange, to, from)
	}

	byMonth := make(map[string][]string)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		month := d.Format("2006-01")
		byMonth[month] = append(byMonth[month], d.Format(dateLayout))
	}
	return byMonth, nil
}

// FilterAvailable keeps only services with no booked or blocked day inside
// the range. A service with no calendar documents, or no entries for the
// requested days, is fully available: absence always means available. An
// unreadable month excludes its service from the results instead of
// failing the whole pass.
func (s *availabilityService) FilterAvailable(ctx context.Context, services []*models.VendorService, from, to string) ([]*models.VendorService, error) {
	byMonth, err := expandRange(from, to)
	if err != nil {
		return nil, err
	}

	available := make([]*models.VendorService, 0, len(services))
	for _, svc := range services {
		ok, err := s.serviceAvailable(ctx, svc.ID, byMonth)
		if err != nil {
			s.logger.Warn("availability read failed, treating service as unavailable",
				zap.String("serviceId", svc.ID),
				zap.Error(err),
			)
			continue
		}
		if ok {
			available = append(available, svc)
		}
	}
	return available, nil
}

func (s *availabilityService) serviceAvailable(ctx context.Context, serviceID string, byMonth map[string][]string) (bool, error) {
	for month, days := range byMonth {
		monthDoc, err := s.availabilityRepo.GetMonth(ctx, serviceID, month)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				continue // no calendar for this month: every day available
			}
			return false, err
		}
		for _, day := range days {
			switch monthDoc.Dates[day] {
			case models.DateBooked, models.DateBlocked:
				return false, nil
			}
		}
	}
	return true, nil
}

// DateStatuses returns the status of every non-available day for one
// service across the range. Days missing from the result are available.
func (s *availabilityService) DateStatuses(ctx context.Context, serviceID, from, to string) (map[string]string, error) {
	byMonth, err := expandRange(from, to)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]string)
	for month, days := range byMonth {
		monthDoc, err := s.availabilityRepo.GetMonth(ctx, serviceID, month)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to read availability for '%s' %s: %w", serviceID, month, err)
		}
		for _, day := range days {
			if status, ok := monthDoc.Dates[day]; ok {
				statuses[day] = status
			}
		}
	}
	return statuses, nil
}
