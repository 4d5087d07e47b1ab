package reciprocal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
)

type fakeStore struct {
	mu    sync.Mutex
	clubs map[uuid.UUID]*models.ReciprocalClub
	lois  map[uuid.UUID]*models.LoiRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{clubs: map[uuid.UUID]*models.ReciprocalClub{}, lois: map[uuid.UUID]*models.LoiRequest{}}
}

func (f *fakeStore) addClub(name, location, region, country string, active bool) *models.ReciprocalClub {
	c := &models.ReciprocalClub{ID: uuid.New(), Name: name, Location: location, Region: region, Country: country, IsActive: active}
	f.mu.Lock()
	f.clubs[c.ID] = c
	f.mu.Unlock()
	return c
}

func (f *fakeStore) ListClubs(_ context.Context, flt ClubFilter) ([]models.ReciprocalClub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.ReciprocalClub{}
	for _, c := range f.clubs {
		if !c.IsActive {
			continue
		}
		if flt.Region != "" && c.Region != flt.Region {
			continue
		}
		if flt.Country != "" && c.Country != flt.Country {
			continue
		}
		if flt.Search != "" {
			q := strings.ToLower(flt.Search)
			if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Location), q) {
				continue
			}
		}
		list = append(list, *c)
	}
	return list, nil
}

func (f *fakeStore) GetActiveClub(_ context.Context, id uuid.UUID) (*models.ReciprocalClub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) CreateLoi(_ context.Context, l *models.LoiRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.clubs[l.ClubID]
	l.ID = uuid.New()
	l.RequestedAt = time.Now()
	l.CreatedAt, l.UpdatedAt = l.RequestedAt, l.RequestedAt
	l.Club = &models.ClubSummary{ID: c.ID, Name: c.Name, Location: c.Location, Country: c.Country, Note: c.Note}
	cp := *l
	f.lois[l.ID] = &cp
	return nil
}

func (f *fakeStore) GetLoi(_ context.Context, id uuid.UUID) (*models.LoiRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lois[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) CancelLoi(_ context.Context, id uuid.UUID) (*models.LoiRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lois[id]
	if !ok || l.Status != models.LoiPending {
		return nil, nil
	}
	l.Status = models.LoiRejected
	cp := *l
	return &cp, nil
}

func (f *fakeStore) ListLois(_ context.Context, flt LoiFilter) ([]models.LoiRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.LoiRequest{}
	for _, l := range f.lois {
		if l.MemberID == flt.MemberID && (flt.Status == "" || l.Status == flt.Status) {
			list = append(list, *l)
		}
	}
	return list, nil
}

func (f *fakeStore) MemberContact(_ context.Context, id uuid.UUID) (string, string, error) {
	return "Alice Smith", "alice@example.com", nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []queue.EmailPayload
	typ  []queue.JobType
}

func (n *fakeNotifier) EnqueueEmail(_ context.Context, t queue.JobType, p queue.EmailPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, p)
	n.typ = append(n.typ, t)
	return nil
}
