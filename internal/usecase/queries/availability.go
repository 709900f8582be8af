package queries

import (
	"context"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDate = errs.New("invalid date")

// SlotRow is the raw slot projection the resolver works from.
type SlotRow struct {
	ResourceID uuid.UUID
	StartMin   int
	EndMin     int
	Status     booking.Status
	ExpiresAt  time.Time
}

// ResourceRow identifies one bookable resource in the grid.
type ResourceRow struct {
	ID   uuid.UUID
	Type resource.Type
	Name string
}

type GridCell struct {
	StartMin int
	EndMin   int
	Status   string
}

type ResourceAvailability struct {
	ResourceID   uuid.UUID
	ResourceType resource.Type
	ResourceName string
	Cells        []GridCell
}

type AvailabilityFilter struct {
	Date         string
	ResourceType *resource.Type
	ResourceID   *uuid.UUID
}

type AvailabilityReadStore interface {
	ListResources(ctx context.Context, resourceType *resource.Type, resourceID *uuid.UUID) ([]ResourceRow, error)
	ListSlotsForDate(ctx context.Context, date string, resourceIDs []uuid.UUID) ([]SlotRow, error)
	Settings(ctx context.Context) (settings.Snapshot, error)
}

type AvailabilityQueries interface {
	GetDayGrid(ctx context.Context, filter AvailabilityFilter) ([]ResourceAvailability, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store AvailabilityReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, clock: clk}
}

func (q *availabilityQueriesImpl) GetDayGrid(ctx context.Context, filter AvailabilityFilter) ([]ResourceAvailability, error) {
	day, err := time.Parse(booking.DateLayout, filter.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	snap, err := q.store.Settings(ctx)
	if err != nil {
		return nil, err
	}

	resources, err := q.store.ListResources(ctx, filter.ResourceType, filter.ResourceID)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return []ResourceAvailability{}, nil
	}

	ids := make([]uuid.UUID, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}

	slots, err := q.store.ListSlotsForDate(ctx, filter.Date, ids)
	if err != nil {
		return nil, err
	}

	return BuildDayGrid(resources, slots, snap, day.Weekday(), q.clock.Now()), nil
}

// BuildDayGrid projects slots onto the quantized opening-hours grid. A cell
// covered by a BOOKED slot is BOOKED; a cell covered by a HOLD whose expiry
// is still in the future is HOLD; everything else is AVAILABLE. Expiry is
// checked live against now rather than trusting the stored status, because
// the sweeper runs asynchronously.
func BuildDayGrid(
	resources []ResourceRow,
	slots []SlotRow,
	snap settings.Snapshot,
	weekday time.Weekday,
	now time.Time,
) []ResourceAvailability {
	hours := snap.OpeningHours[weekday]
	interval := snap.SlotIntervalMin
	if interval <= 0 {
		interval = 60
	}

	byResource := make(map[uuid.UUID][]SlotRow, len(resources))
	for _, s := range slots {
		byResource[s.ResourceID] = append(byResource[s.ResourceID], s)
	}

	result := make([]ResourceAvailability, len(resources))
	for i, res := range resources {
		var cells []GridCell
		for start := hours.OpenHour * 60; start+interval <= hours.CloseHour*60; start += interval {
			cell := GridCell{StartMin: start, EndMin: start + interval, Status: "AVAILABLE"}
			for _, s := range byResource[res.ID] {
				if s.EndMin <= start || s.StartMin >= start+interval {
					continue
				}
				switch s.Status {
				case booking.StatusBooked:
					cell.Status = string(booking.StatusBooked)
				case booking.StatusHold:
					if s.ExpiresAt.After(now) && cell.Status != string(booking.StatusBooked) {
						cell.Status = string(booking.StatusHold)
					}
				case booking.StatusCancelled:
					// cancelled slots never block
				}
			}
			cells = append(cells, cell)
		}
		result[i] = ResourceAvailability{
			ResourceID:   res.ID,
			ResourceType: res.Type,
			ResourceName: res.Name,
			Cells:        cells,
		}
	}
	return result
}
