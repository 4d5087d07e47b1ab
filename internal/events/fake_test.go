package events

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

type fakeStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*models.Event
	bookings map[uuid.UUID]*models.EventBooking
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: map[uuid.UUID]*models.Event{}, bookings: map[uuid.UUID]*models.EventBooking{}}
}

func (f *fakeStore) addEvent(title string, typ models.EventType, date string, price float64, active bool) *models.Event {
	d, _ := models.ParseDate(date)
	e := &models.Event{ID: uuid.New(), Title: title, EventType: typ, EventDate: d, PricePerPerson: price, IsActive: active}
	f.mu.Lock()
	f.events[e.ID] = e
	f.mu.Unlock()
	return e
}

func (f *fakeStore) ListEvents(_ context.Context, flt ListFilter) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Event{}
	for _, e := range f.events {
		if !e.IsActive {
			continue
		}
		if flt.Date != nil && !e.EventDate.Equal(flt.Date.Time) {
			continue
		}
		if flt.Type != "" && e.EventType != flt.Type {
			continue
		}
		if flt.From != nil && e.EventDate.Before(*flt.From) {
			continue
		}
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EventDate.Before(list[j].EventDate) })
	return list, nil
}

func (f *fakeStore) GetActiveEvent(_ context.Context, id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok || !e.IsActive {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) summary(id uuid.UUID) *models.EventSummary {
	e := f.events[id]
	return &models.EventSummary{ID: e.ID, Title: e.Title, EventType: e.EventType, EventDate: e.EventDate}
}

func (f *fakeStore) CreateBooking(_ context.Context, b *models.EventBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = uuid.New()
	b.BookedAt = time.Now()
	b.CreatedAt, b.UpdatedAt = b.BookedAt, b.BookedAt
	b.Event = f.summary(b.EventID)
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeStore) GetBooking(_ context.Context, id uuid.UUID) (*models.EventBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) CancelBooking(_ context.Context, id uuid.UUID) (*models.EventBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status == models.BookingCancelled {
		return nil, nil
	}
	b.Status = models.BookingCancelled
	cp := *b
	return &cp, nil
}

func (f *fakeStore) ListMemberBookings(_ context.Context, flt BookingFilter) ([]models.EventBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.EventBooking{}
	for _, b := range f.bookings {
		if b.MemberID != flt.MemberID {
			continue
		}
		if flt.EventID != uuid.Nil && b.EventID != flt.EventID {
			continue
		}
		if flt.Status != "" && b.Status != flt.Status {
			continue
		}
		if flt.From != nil && f.events[b.EventID].EventDate.Before(*flt.From) {
			continue
		}
		list = append(list, *b)
	}
	return list, nil
}
