package models

import (
	"encoding/json"
	"time"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher || role == RoleAdmin
}

const (
	SkillCategoryTechnical = "technical"
	SkillCategorySoft      = "soft"
	InterestCategory       = "general"
)

type User struct {
	ID                  string     `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	Role                string     `db:"role" json:"role"`
	FirstName           string     `db:"first_name" json:"first_name"`
	LastName            string     `db:"last_name" json:"last_name"`
	Phone               *string    `db:"phone" json:"phone,omitempty"`
	IsActive            bool       `db:"is_active" json:"is_active"`
	LastLoginAt         *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	ResetTokenHash      *string    `db:"reset_token_hash" json:"-"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

type StudentProfile struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	StudentIDNum      *string   `db:"student_id_num" json:"student_id_num,omitempty"`
	YearLevel         *string   `db:"year_level" json:"year_level,omitempty"`
	Major             *string   `db:"major" json:"major,omitempty"`
	DateOfBirth       *Date     `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Bio               *string   `db:"bio" json:"bio,omitempty"`
	ShortTermGoals    *string   `db:"short_term_goals" json:"short_term_goals,omitempty"`
	LongTermGoals     *string   `db:"long_term_goals" json:"long_term_goals,omitempty"`
	CareerAspirations *string   `db:"career_aspirations" json:"career_aspirations,omitempty"`
	LinkedInURL       *string   `db:"linkedin_url" json:"linkedin_url,omitempty"`
	PortfolioURL      *string   `db:"portfolio_url" json:"portfolio_url,omitempty"`
	GithubURL         *string   `db:"github_url" json:"github_url,omitempty"`
	ResumeMediaID     *string   `db:"resume_media_id" json:"resume_media_id,omitempty"`
	ProfileCompletion int       `db:"profile_completion" json:"profile_completion"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// StudentSummary is a profile joined with its owning user, used in rosters and listings.
type StudentSummary struct {
	ID                string  `db:"id" json:"id"`
	UserID            string  `db:"user_id" json:"user_id"`
	Email             string  `db:"email" json:"email"`
	FirstName         string  `db:"first_name" json:"first_name"`
	LastName          string  `db:"last_name" json:"last_name"`
	StudentIDNum      *string `db:"student_id_num" json:"student_id_num,omitempty"`
	YearLevel         *string `db:"year_level" json:"year_level,omitempty"`
	Major             *string `db:"major" json:"major,omitempty"`
	ProfileCompletion int     `db:"profile_completion" json:"profile_completion"`
	IsActive          bool    `db:"is_active" json:"is_active"`
}

type Skill struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
}

type StudentSkill struct {
	SkillID          string  `db:"skill_id" json:"skill_id"`
	Name             string  `db:"name" json:"name"`
	Category         string  `db:"category" json:"category"`
	ProficiencyLevel *string `db:"proficiency_level" json:"proficiency_level,omitempty"`
	YearsExperience  *int    `db:"years_experience" json:"years_experience,omitempty"`
}

type Interest struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
}

type StudentInterest struct {
	InterestID    string  `db:"interest_id" json:"interest_id"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	InterestLevel *string `db:"interest_level" json:"interest_level,omitempty"`
}

type Goal struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Priority    string    `db:"priority" json:"priority"`
	Status      string    `db:"status" json:"status"`
	TargetDate  *Date     `db:"target_date" json:"target_date,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Activity struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Category     string    `db:"category" json:"category"`
	StartDate    *Date     `db:"start_date" json:"start_date,omitempty"`
	EndDate      *Date     `db:"end_date" json:"end_date,omitempty"`
	Hours        *int      `db:"hours" json:"hours,omitempty"`
	Organization *string   `db:"organization" json:"organization,omitempty"`
	Position     *string   `db:"position" json:"position,omitempty"`
	Achievements *string   `db:"achievements" json:"achievements,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type Class struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Code        string    `db:"code" json:"code"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Group struct {
	ID                string          `db:"id" json:"id"`
	ClassID           string          `db:"class_id" json:"class_id"`
	Name              string          `db:"name" json:"name"`
	Description       *string         `db:"description" json:"description,omitempty"`
	MaxSize           int             `db:"max_size" json:"max_size"`
	Status            string          `db:"status" json:"status"`
	ProjectName       *string         `db:"project_name" json:"project_name,omitempty"`
	FormationCriteria json.RawMessage `db:"formation_criteria" json:"formation_criteria"`
	CreatedBy         string          `db:"created_by" json:"created_by"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

type GroupMember struct {
	GroupID    string    `db:"group_id" json:"group_id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Email      string    `db:"email" json:"email"`
	MemberRole string    `db:"member_role" json:"member_role"`
	JoinedAt   time.Time `db:"joined_at" json:"joined_at"`
}

type SurveyTemplate struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type SurveyQuestion struct {
	ID         string          `db:"id" json:"id"`
	SurveyID   string          `db:"survey_id" json:"survey_id"`
	Position   int             `db:"position" json:"position"`
	Text       string          `db:"text" json:"text"`
	Type       string          `db:"question_type" json:"type"`
	IsRequired bool            `db:"is_required" json:"is_required"`
	Options    json.RawMessage `db:"options" json:"options"`
}

// OptionList decodes the stored options array; malformed data yields no options.
func (q SurveyQuestion) OptionList() []string {
	options := []string{}
	if len(q.Options) == 0 {
		return options
	}
	_ = json.Unmarshal(q.Options, &options)
	return options
}

type SurveyResponse struct {
	ID          string          `db:"id" json:"id"`
	SurveyID    string          `db:"survey_id" json:"survey_id"`
	StudentID   string          `db:"student_id" json:"student_id"`
	Answers     json.RawMessage `db:"answers" json:"answers"`
	Status      string          `db:"status" json:"status"`
	CompletedAt *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type ActivityLog struct {
	ID        string          `db:"id" json:"id"`
	UserID    *string         `db:"user_id" json:"user_id,omitempty"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	IPAddress *string         `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type MediaAsset struct {
	ID          string    `db:"id" json:"id"`
	OwnerUserID *string   `db:"owner_user_id" json:"owner_user_id,omitempty"`
	Bucket      string    `db:"bucket" json:"-"`
	StorageKey  string    `db:"storage_key" json:"-"`
	Filename    *string   `db:"filename" json:"filename,omitempty"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	Sha256      *string   `db:"sha256" json:"sha256,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id" json:"-"`
	CapturedAt        time.Time `db:"captured_at" json:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes" json:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes" json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes" json:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes" json:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes" json:"disk_used_bytes"`
	ProcessCPULoad    float64   `db:"process_cpu_load" json:"process_cpu_load"`
	SystemCPULoad     float64   `db:"system_cpu_load" json:"system_cpu_load"`
}

type UserFilter struct {
	Search string
	Role   string
	Limit  int
	Offset int
}
