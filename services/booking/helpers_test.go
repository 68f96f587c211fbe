package booking_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingRepo "slotly/database/repository/booking"
	"slotly/models"
	"slotly/services/booking"
)

// fakeBookingRepo is an in-memory BookingRepository that mirrors the store's
// contract: (provider, idempotency key) uniqueness, conditional status
// updates, and keyset-ordered list scans.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking

	// beforeInsert, when set, runs inside Insert before the uniqueness check.
	// Tests use it to land a competing write in the race window.
	beforeInsert func()
	// beforeUpdate runs inside UpdateStatusIfCurrent before the match, to
	// model a write landing between a fetch and the conditional update.
	beforeUpdate func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if r.beforeInsert != nil {
		hook := r.beforeInsert
		r.beforeInsert = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.IdempotencyKey != "" {
		for _, existing := range r.bookings {
			if existing.ProviderUserID == b.ProviderUserID && existing.IdempotencyKey == b.IdempotencyKey {
				return bookingRepo.ErrDuplicateIdempotencyKey
			}
		}
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		copied := b
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) GetByProviderAndIdempotencyKey(ctx context.Context, providerUserID, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ProviderUserID == providerUserID && b.IdempotencyKey == key {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatusIfCurrent(ctx context.Context, id string, current, next models.BookingStatus, updatedAt time.Time) (*models.Booking, error) {
	if r.beforeUpdate != nil {
		hook := r.beforeUpdate
		r.beforeUpdate = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != current {
		return nil, nil
	}
	b.Status = next
	b.UpdatedAt = updatedAt
	r.bookings[id] = b
	copied := b
	return &copied, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, query bookingRepo.ListQuery) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []models.Booking
	for _, b := range r.bookings {
		if query.ProviderUserID != "" && b.ProviderUserID != query.ProviderUserID {
			continue
		}
		if query.CustomerUserID != "" && b.CustomerUserID != query.CustomerUserID {
			continue
		}
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		if query.AfterID != "" {
			after := b.StartTime.After(query.AfterStartTime) ||
				(b.StartTime.Equal(query.AfterStartTime) && b.ID > query.AfterID)
			if !after {
				continue
			}
		}
		rows = append(rows, b)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].StartTime.Equal(rows[j].StartTime) {
			return rows[i].StartTime.Before(rows[j].StartTime)
		}
		return rows[i].ID < rows[j].ID
	})
	if query.Limit > 0 && int64(len(rows)) > query.Limit {
		rows = rows[:query.Limit]
	}
	return rows, nil
}

// fakeUserRepo tracks users and profile membership in memory.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	providers map[string]bool
	customers map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[string]models.User),
		providers: make(map[string]bool),
		customers: make(map[string]bool),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRoles(ctx context.Context, id string, roles []models.Role, activeRole models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Roles = roles
	u.ActiveRole = activeRole
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdateActiveRole(ctx context.Context, id string, activeRole models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.ActiveRole = activeRole
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) CreateProviderProfile(ctx context.Context, profile *models.ProviderProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[profile.UserID] = true
	return nil
}

func (r *fakeUserRepo) CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[profile.UserID] = true
	return nil
}

func (r *fakeUserRepo) HasProviderProfile(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[userID], nil
}

func (r *fakeUserRepo) HasCustomerProfile(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.customers[userID], nil
}

// fixedNow is the clock every test service runs on.
var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBookingRepo, users *fakeUserRepo) *booking.DefaultBookingService {
	return &booking.DefaultBookingService{
		Repo:  repo,
		Users: users,
		Now:   func() time.Time { return fixedNow },
	}
}

func newCustomerIdentity(id string) models.AuthUser {
	return models.AuthUser{
		UserID:     id,
		Roles:      []models.Role{models.RoleCustomer},
		ActiveRole: models.RoleCustomer,
	}
}

func newProviderIdentity(id string) models.AuthUser {
	return models.AuthUser{
		UserID:     id,
		Roles:      []models.Role{models.RoleProvider, models.RoleCustomer},
		ActiveRole: models.RoleProvider,
	}
}

func newAdminIdentity(id string) models.AuthUser {
	return models.AuthUser{
		UserID:     id,
		Roles:      []models.Role{models.RoleAdmin},
		ActiveRole: models.RoleAdmin,
	}
}

// newImpersonatedIdentity builds the identity an admin carries while acting
// as the target user in the given role.
func newImpersonatedIdentity(adminID, targetID string, activeRole models.Role) models.AuthUser {
	return models.AuthUser{
		UserID:        adminID,
		Roles:         []models.Role{activeRole},
		ActiveRole:    activeRole,
		ActorUserID:   adminID,
		SubjectUserID: targetID,
	}
}

func seedBooking(repo *fakeBookingRepo, providerID, customerID string, start time.Time, status models.BookingStatus) models.Booking {
	b := models.Booking{
		ID:             uuid.NewString(),
		ProviderUserID: providerID,
		CustomerUserID: customerID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         status,
		CreatedAt:      fixedNow,
		UpdatedAt:      fixedNow,
	}
	repo.mu.Lock()
	repo.bookings[b.ID] = b
	repo.mu.Unlock()
	return b
}
