package dining

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/apperr"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
)

type fakeStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.DiningReservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]*models.DiningReservation{}}
}

func (f *fakeStore) List(_ context.Context, flt ListFilter) ([]models.DiningReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.DiningReservation{}
	for _, r := range f.rows {
		if r.MemberID != flt.MemberID {
			continue
		}
		if flt.Date != nil && !r.ReservationDate.Equal(flt.Date.Time) {
			continue
		}
		if flt.From != nil && r.ReservationDate.Before(*flt.From) {
			continue
		}
		if len(flt.Statuses) > 0 {
			match := false
			for _, s := range flt.Statuses {
				match = match || r.Status == s
			}
			if !match {
				continue
			}
		}
		list = append(list, *r)
	}
	return list, nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (*models.DiningReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, r *models.DiningReservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeStore) Update(_ context.Context, r *models.DiningReservation) (*models.DiningReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[r.ID]; !ok {
		return nil, nil
	}
	r.UpdatedAt = time.Now()
	cp := *r
	f.rows[r.ID] = &cp
	out := cp
	return &out, nil
}

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCreateValidatesGuestCount(t *testing.T) {
	svc := NewService(newFakeStore(), nil)
	for _, n := range []int{0, -1, 11} {
		_, err := svc.Create(context.Background(), CreateInput{
			MemberID: uuid.New(), Date: date(t, "2030-01-01"), Time: "12:30", MealType: models.DiningLunch, GuestCount: n,
		})
		assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err), "guest_count=%d", n)
	}
	for _, n := range []int{1, 10} {
		_, err := svc.Create(context.Background(), CreateInput{
			MemberID: uuid.New(), Date: date(t, "2030-01-01"), Time: "12:30", MealType: models.DiningLunch, GuestCount: n,
		})
		assert.NoError(t, err, "guest_count=%d", n)
	}
}

func TestCreateAllowsOverlappingReservations(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	member := uuid.New()
	in := CreateInput{MemberID: member, Date: date(t, "2030-01-01"), Time: "08:00", MealType: models.DiningBreakfast, GuestCount: 2}

	first, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.ReservationPending, first.Status)
}

func TestUpdateAndCancelOwnership(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	owner, other := uuid.New(), uuid.New()
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateInput{MemberID: owner, Date: date(t, "2030-01-01"), Time: "12:30", MealType: models.DiningLunch, GuestCount: 2})
	require.NoError(t, err)

	four := 4
	_, err = svc.Update(ctx, res.ID, other, UpdateInput{GuestCount: &four})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.Cancel(ctx, res.ID, other)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.Cancel(ctx, uuid.New(), owner)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	twelve := 12
	_, err = svc.Update(ctx, res.ID, owner, UpdateInput{GuestCount: &twelve})
	assert.Equal(t, apperr.KindInvalidRequest, apperr.KindOf(err))

	pref := "Window"
	updated, err := svc.Update(ctx, res.ID, owner, UpdateInput{GuestCount: &four, TablePreference: &pref})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.GuestCount)
	assert.Equal(t, "Window", *updated.TablePreference)
	assert.Equal(t, "12:30", updated.ReservationTime)

	cancelled, err := svc.Cancel(ctx, res.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)
}
