package services

import (
	"context"
	"strings"
	"time"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// memStore keeps just enough state for the service tests. Methods a test does
// not exercise fall through to the nil embedded interface and panic.
type memStore struct {
	store.Store

	users    map[string]*models.User
	profiles map[string]*models.StudentProfile
	classes  map[string]*models.Class
	enrolled map[string]bool
	goals    map[string]*models.Goal
	groups   map[string]*models.Group
	members  map[string][]string
	logs     []models.ActivityLog

	catalog    map[string]string
	skills     map[string][]models.StudentSkill
	interests  map[string][]models.StudentInterest
	activities map[string]*models.Activity
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		profiles: map[string]*models.StudentProfile{},
		classes:  map[string]*models.Class{},
		enrolled: map[string]bool{},
		goals:    map[string]*models.Goal{},
		groups:   map[string]*models.Group{},
		members:  map[string][]string{},

		catalog:    map[string]string{},
		skills:     map[string][]models.StudentSkill{},
		interests:  map[string][]models.StudentInterest{},
		activities: map[string]*models.Activity{},
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(store.Queries) error) error {
	return fn(m)
}

func (m *memStore) InsertActivityLog(ctx context.Context, entry *models.ActivityLog) error {
	entry.CreatedAt = time.Now()
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	if exists, _ := m.EmailExists(ctx, user.Email); exists {
		return store.ErrConflict
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) TouchLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	m.users[id].LastLoginAt = &now
	return nil
}

func (m *memStore) UpdateUserContact(ctx context.Context, id string, firstName, lastName, phone *string) error {
	u, ok := m.users[id]
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

func (m *memStore) UpdatePassword(ctx context.Context, id, hash string) error {
	u := m.users[id]
	u.PasswordHash = hash
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (m *memStore) SetResetToken(ctx context.Context, id, digest string, expiresAt time.Time) error {
	u := m.users[id]
	u.ResetTokenHash = &digest
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (m *memStore) GetUserByResetToken(ctx context.Context, digest string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == digest && u.ResetTokenExpiresAt.After(time.Now()) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) CreateProfile(ctx context.Context, profile *models.StudentProfile) error {
	copied := *profile
	m.profiles[profile.ID] = &copied
	return nil
}

func (m *memStore) GetProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	copied := *profile
	m.profiles[profile.ID] = &copied
	return nil
}

func (m *memStore) catalogID(name, category string) string {
	key := category + "/" + strings.ToLower(name)
	id, ok := m.catalog[key]
	if !ok {
		id = "cat-" + key
		m.catalog[key] = id
	}
	return id
}

func (m *memStore) UpsertSkill(ctx context.Context, name, category string) (string, error) {
	return m.catalogID(name, category), nil
}

func (m *memStore) UpsertInterest(ctx context.Context, name, category string) (string, error) {
	return m.catalogID(name, "interest:"+category), nil
}

func (m *memStore) ClearStudentSkills(ctx context.Context, studentID, category string) error {
	kept := []models.StudentSkill{}
	for _, s := range m.skills[studentID] {
		if s.Category != category {
			kept = append(kept, s)
		}
	}
	m.skills[studentID] = kept
	return nil
}

func (m *memStore) AddStudentSkill(ctx context.Context, studentID, skillID string, proficiency *string, years *int) error {
	parts := strings.SplitN(strings.TrimPrefix(skillID, "cat-"), "/", 2)
	m.skills[studentID] = append(m.skills[studentID], models.StudentSkill{
		SkillID:          skillID,
		Name:             parts[1],
		Category:         parts[0],
		ProficiencyLevel: proficiency,
		YearsExperience:  years,
	})
	return nil
}

func (m *memStore) ListStudentSkills(ctx context.Context, studentID string) ([]models.StudentSkill, error) {
	return append([]models.StudentSkill{}, m.skills[studentID]...), nil
}

func (m *memStore) ClearStudentInterests(ctx context.Context, studentID string) error {
	delete(m.interests, studentID)
	return nil
}

func (m *memStore) AddStudentInterest(ctx context.Context, studentID, interestID string, level *string) error {
	name := interestID[strings.LastIndex(interestID, "/")+1:]
	m.interests[studentID] = append(m.interests[studentID], models.StudentInterest{
		InterestID:    interestID,
		Name:          name,
		Category:      models.InterestCategory,
		InterestLevel: level,
	})
	return nil
}

func (m *memStore) ListStudentInterests(ctx context.Context, studentID string) ([]models.StudentInterest, error) {
	return append([]models.StudentInterest{}, m.interests[studentID]...), nil
}

func (m *memStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	copied := *activity
	m.activities[activity.ID] = &copied
	return nil
}

func (m *memStore) GetActivity(ctx context.Context, studentID, activityID string) (*models.Activity, error) {
	a, ok := m.activities[activityID]
	if !ok || a.StudentID != studentID {
		return nil, store.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memStore) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	copied := *activity
	m.activities[activity.ID] = &copied
	return nil
}

func (m *memStore) DeleteActivity(ctx context.Context, studentID, activityID string) error {
	if _, err := m.GetActivity(ctx, studentID, activityID); err != nil {
		return err
	}
	delete(m.activities, activityID)
	return nil
}

func (m *memStore) GetClassByCode(ctx context.Context, code string) (*models.Class, error) {
	for _, c := range m.classes {
		if strings.EqualFold(c.Code, code) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) EnrollStudent(ctx context.Context, classID, studentID string) error {
	m.enrolled[classID+"/"+studentID] = true
	return nil
}

func (m *memStore) IsEnrolled(ctx context.Context, classID, studentID string) (bool, error) {
	return m.enrolled[classID+"/"+studentID], nil
}

func (m *memStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	copied := *goal
	m.goals[goal.ID] = &copied
	return nil
}

func (m *memStore) GetGoal(ctx context.Context, studentID, goalID string) (*models.Goal, error) {
	g, ok := m.goals[goalID]
	if !ok || g.StudentID != studentID {
		return nil, store.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *memStore) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	copied := *goal
	m.goals[goal.ID] = &copied
	return nil
}

func (m *memStore) DeleteGoal(ctx context.Context, studentID, goalID string) error {
	if _, err := m.GetGoal(ctx, studentID, goalID); err != nil {
		return err
	}
	delete(m.goals, goalID)
	return nil
}

func (m *memStore) GetGroup(ctx context.Context, classID, groupID string) (*models.Group, error) {
	g, ok := m.groups[groupID]
	if !ok || g.ClassID != classID {
		return nil, store.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *memStore) AddGroupMember(ctx context.Context, groupID, studentID, role string) error {
	for _, id := range m.members[groupID] {
		if id == studentID {
			return store.ErrConflict
		}
	}
	if len(m.members[groupID]) >= m.groups[groupID].MaxSize {
		return store.ErrGroupFull
	}
	m.members[groupID] = append(m.members[groupID], studentID)
	return nil
}
