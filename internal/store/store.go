// Package store is the data access capability handed to the HTTP layer. Handlers
// depend on the Store interface; Postgres is the production implementation.
package store

import (
	"context"
	"errors"
	"time"

	"pathways-backend-go/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record already exists")
	ErrGroupFull = errors.New("group is full")
)

type UserQueries interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id string) error
	UpdateUserContact(ctx context.Context, id string, firstName, lastName, phone *string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	SetUserActive(ctx context.Context, id string, active bool) error
}

type ProfileQueries interface {
	CreateProfile(ctx context.Context, profile *models.StudentProfile) error
	GetProfile(ctx context.Context, id string) (*models.StudentProfile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, profile *models.StudentProfile) error
	SetProfileResume(ctx context.Context, profileID, mediaID string) error
	GetStudentSummary(ctx context.Context, profileID string) (*models.StudentSummary, error)
	ListStudents(ctx context.Context, classID string) ([]models.StudentSummary, error)
}

type CatalogQueries interface {
	UpsertSkill(ctx context.Context, name, category string) (string, error)
	UpsertInterest(ctx context.Context, name, category string) (string, error)
	ListSkills(ctx context.Context, category string) ([]models.Skill, error)
	ListInterests(ctx context.Context) ([]models.Interest, error)
	ClearStudentSkills(ctx context.Context, studentID, category string) error
	AddStudentSkill(ctx context.Context, studentID, skillID string, proficiency *string, years *int) error
	ListStudentSkills(ctx context.Context, studentID string) ([]models.StudentSkill, error)
	ClearStudentInterests(ctx context.Context, studentID string) error
	AddStudentInterest(ctx context.Context, studentID, interestID string, level *string) error
	ListStudentInterests(ctx context.Context, studentID string) ([]models.StudentInterest, error)
}

type GoalQueries interface {
	ListGoals(ctx context.Context, studentID string) ([]models.Goal, error)
	GetGoal(ctx context.Context, studentID, goalID string) (*models.Goal, error)
	CreateGoal(ctx context.Context, goal *models.Goal) error
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, studentID, goalID string) error
}

type ActivityQueries interface {
	ListActivities(ctx context.Context, studentID string) ([]models.Activity, error)
	GetActivity(ctx context.Context, studentID, activityID string) (*models.Activity, error)
	CreateActivity(ctx context.Context, activity *models.Activity) error
	UpdateActivity(ctx context.Context, activity *models.Activity) error
	DeleteActivity(ctx context.Context, studentID, activityID string) error
}

type ClassQueries interface {
	CreateClass(ctx context.Context, class *models.Class) error
	GetClass(ctx context.Context, id string) (*models.Class, error)
	GetClassByCode(ctx context.Context, code string) (*models.Class, error)
	ClassCodeExists(ctx context.Context, code string) (bool, error)
	ListClasses(ctx context.Context, teacherID string) ([]models.Class, error)
	UpdateClass(ctx context.Context, class *models.Class) error
	EnrollStudent(ctx context.Context, classID, studentID string) error
	IsEnrolled(ctx context.Context, classID, studentID string) (bool, error)
}

type GroupQueries interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, classID, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context, classID string) ([]models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, classID, groupID string) error
	ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)
	AddGroupMember(ctx context.Context, groupID, studentID, role string) error
	RemoveGroupMember(ctx context.Context, groupID, studentID string) error
	ListStudentGroups(ctx context.Context, studentID string) ([]models.Group, error)
}

type SurveyQueries interface {
	CreateSurvey(ctx context.Context, survey *models.SurveyTemplate) error
	CreateSurveyQuestion(ctx context.Context, question *models.SurveyQuestion) error
	GetSurvey(ctx context.Context, id string) (*models.SurveyTemplate, error)
	ListSurveys(ctx context.Context, activeOnly bool) ([]models.SurveyTemplate, error)
	ListSurveyQuestions(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error)
	SetSurveyActive(ctx context.Context, id string, active bool) error
	UpsertSurveyResponse(ctx context.Context, response *models.SurveyResponse) error
	GetSurveyResponse(ctx context.Context, surveyID, studentID string) (*models.SurveyResponse, error)
	ListSurveyResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error)
}

type AuditQueries interface {
	InsertActivityLog(ctx context.Context, entry *models.ActivityLog) error
	ListActivityLogs(ctx context.Context, userID string, limit int) ([]models.ActivityLog, error)
}

type MediaQueries interface {
	CreateMediaAsset(ctx context.Context, asset *models.MediaAsset) error
	GetMediaAsset(ctx context.Context, id string) (*models.MediaAsset, error)
}

type MetricQueries interface {
	InsertMetricSample(ctx context.Context, sample *models.ServerMetricSample) error
	ListMetricSamples(ctx context.Context, since time.Time, limit int) ([]models.ServerMetricSample, error)
}

// Queries is every parameterized statement the application runs. It is satisfied
// both by the pool and by an open transaction.
type Queries interface {
	UserQueries
	ProfileQueries
	CatalogQueries
	GoalQueries
	ActivityQueries
	ClassQueries
	GroupQueries
	SurveyQueries
	AuditQueries
	MediaQueries
	MetricQueries
}

type Store interface {
	Queries
	// WithTx runs fn in one transaction: commit when fn returns nil, rollback
	// on error or panic.
	WithTx(ctx context.Context, fn func(Queries) error) error
	Ping(ctx context.Context) error
	Close() error
}
