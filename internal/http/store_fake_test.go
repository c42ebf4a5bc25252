package httpapi

import (
	"context"
	"strings"
	"sync"
	"time"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// fakeStore backs the router tests. Unimplemented queries panic through the
// nil embedded interface.
type fakeStore struct {
	store.Store

	mu       sync.Mutex
	users    map[string]*models.User
	profiles map[string]*models.StudentProfile
	goals    map[string][]models.Goal
	skills   map[string][]models.StudentSkill
	logs     []models.ActivityLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		profiles: map[string]*models.StudentProfile{},
		goals:    map[string][]models.Goal{},
		skills:   map[string][]models.StudentSkill{},
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(store.Queries) error) error {
	return fn(f)
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) InsertActivityLog(ctx context.Context, entry *models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.CreatedAt = time.Now()
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	if exists, _ := f.EmailExists(ctx, user.Email); exists {
		return store.ErrConflict
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) TouchLastLogin(ctx context.Context, id string) error {
	return nil
}

func (f *fakeStore) GetProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetProfile(ctx context.Context, id string) (*models.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) CreateProfile(ctx context.Context, profile *models.StudentProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	return f.CreateProfile(ctx, profile)
}

func (f *fakeStore) UpdateUserContact(ctx context.Context, id string, firstName, lastName, phone *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	if phone != nil {
		u.Phone = phone
	}
	return nil
}

func (f *fakeStore) UpsertSkill(ctx context.Context, name, category string) (string, error) {
	return category + "/" + name, nil
}

func (f *fakeStore) ClearStudentSkills(ctx context.Context, studentID, category string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := []models.StudentSkill{}
	for _, s := range f.skills[studentID] {
		if s.Category != category {
			kept = append(kept, s)
		}
	}
	f.skills[studentID] = kept
	return nil
}

func (f *fakeStore) AddStudentSkill(ctx context.Context, studentID, skillID string, proficiency *string, years *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, name, _ := strings.Cut(skillID, "/")
	f.skills[studentID] = append(f.skills[studentID], models.StudentSkill{SkillID: skillID, Name: name, Category: category})
	return nil
}

func (f *fakeStore) ListStudentSkills(ctx context.Context, studentID string) ([]models.StudentSkill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.StudentSkill{}, f.skills[studentID]...), nil
}

func (f *fakeStore) ListStudentInterests(ctx context.Context, studentID string) ([]models.StudentInterest, error) {
	return []models.StudentInterest{}, nil
}

func (f *fakeStore) ListGoals(ctx context.Context, studentID string) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Goal{}, f.goals[studentID]...), nil
}

func (f *fakeStore) ListActivities(ctx context.Context, studentID string) ([]models.Activity, error) {
	return []models.Activity{}, nil
}

func (f *fakeStore) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []models.User{}
	for _, u := range f.users {
		if filter.Role == "" || u.Role == filter.Role {
			users = append(users, *u)
		}
	}
	return users, len(users), nil
}

func (f *fakeStore) ListMetricSamples(ctx context.Context, since time.Time, limit int) ([]models.ServerMetricSample, error) {
	return []models.ServerMetricSample{}, nil
}

func (f *fakeStore) addUser(id, email, role string, active bool) *models.User {
	user := &models.User{ID: id, Email: email, Role: role, FirstName: "Test", LastName: "User", IsActive: active}
	f.users[id] = user
	return user
}

func (f *fakeStore) addProfile(id, userID string) {
	f.profiles[id] = &models.StudentProfile{ID: id, UserID: userID}
}
