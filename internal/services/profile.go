package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// ProfileView is the user plus, for students, the profile with its skills and interests.
type ProfileView struct {
	User            *models.User             `json:"user"`
	Profile         *models.StudentProfile   `json:"profile,omitempty"`
	TechnicalSkills []models.StudentSkill    `json:"technical_skills,omitempty"`
	SoftSkills      []models.StudentSkill    `json:"soft_skills,omitempty"`
	Interests       []models.StudentInterest `json:"interests,omitempty"`
}

type StudentDetail struct {
	Student         *models.StudentSummary   `json:"student"`
	Profile         *models.StudentProfile   `json:"profile"`
	TechnicalSkills []models.StudentSkill    `json:"technical_skills"`
	SoftSkills      []models.StudentSkill    `json:"soft_skills"`
	Interests       []models.StudentInterest `json:"interests"`
	Goals           []models.Goal            `json:"goals"`
	Activities      []models.Activity        `json:"activities"`
}

func completionFor(user *models.User, profile *models.StudentProfile, technical, soft, interests int) CompletionInput {
	return CompletionInput{
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		YearLevel:       optional(profile.YearLevel),
		Major:           optional(profile.Major),
		ShortTermGoals:  optional(profile.ShortTermGoals),
		LongTermGoals:   optional(profile.LongTermGoals),
		Bio:             optional(profile.Bio),
		TechnicalSkills: technical,
		SoftSkills:      soft,
		Interests:       interests,
	}
}

func splitSkills(skills []models.StudentSkill) (technical, soft []models.StudentSkill) {
	technical = []models.StudentSkill{}
	soft = []models.StudentSkill{}
	for _, s := range skills {
		if s.Category == models.SkillCategorySoft {
			soft = append(soft, s)
		} else {
			technical = append(technical, s)
		}
	}
	return technical, soft
}

// setText applies an optional update: nil keeps the current value, "" clears it.
func setText(current **string, update *string) {
	if update == nil {
		return
	}
	if *update == "" {
		*current = nil
		return
	}
	value := *update
	*current = &value
}

func mergeProfile(profile *models.StudentProfile, upd models.ProfileUpdate) error {
	setText(&profile.StudentIDNum, upd.StudentIDNum)
	setText(&profile.YearLevel, upd.YearLevel)
	setText(&profile.Major, upd.Major)
	setText(&profile.Bio, upd.Bio)
	setText(&profile.ShortTermGoals, upd.ShortTermGoals)
	setText(&profile.LongTermGoals, upd.LongTermGoals)
	setText(&profile.CareerAspirations, upd.CareerAspirations)
	setText(&profile.LinkedInURL, upd.LinkedInURL)
	setText(&profile.PortfolioURL, upd.PortfolioURL)
	setText(&profile.GithubURL, upd.GithubURL)
	if upd.DateOfBirth != nil {
		dob, err := models.ParseOptionalDate(*upd.DateOfBirth)
		if err != nil {
			return ErrValidation([]string{"Date of birth must be a valid date (YYYY-MM-DD)"})
		}
		profile.DateOfBirth = dob
	}
	return nil
}

func replaceSkills(ctx context.Context, q store.Queries, studentID, category string, items []models.SkillInput) error {
	if items == nil {
		return nil
	}
	if err := q.ClearStudentSkills(ctx, studentID, category); err != nil {
		return err
	}
	for _, item := range items {
		skillID, err := q.UpsertSkill(ctx, item.Name, category)
		if err != nil {
			return err
		}
		if err := q.AddStudentSkill(ctx, studentID, skillID, item.ProficiencyLevel, item.YearsExperience); err != nil {
			return err
		}
	}
	return nil
}

func replaceInterests(ctx context.Context, q store.Queries, studentID string, items []models.SkillInput) error {
	if items == nil {
		return nil
	}
	if err := q.ClearStudentInterests(ctx, studentID); err != nil {
		return err
	}
	for _, item := range items {
		interestID, err := q.UpsertInterest(ctx, item.Name, models.InterestCategory)
		if err != nil {
			return err
		}
		if err := q.AddStudentInterest(ctx, studentID, interestID, item.InterestLevel); err != nil {
			return err
		}
	}
	return nil
}

// UpdateProfile applies an already validated and sanitized update. User fields,
// the lazily created profile, skill and interest rows, the recomputed completion
// score and the activity log row are written in one transaction.
func UpdateProfile(ctx context.Context, st store.Store, userID string, upd models.ProfileUpdate, ip string) (*ProfileView, *models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.UpdateUserContact(ctx, userID, upd.FirstName, upd.LastName, upd.Phone); err != nil {
			return err
		}
		user, err := q.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		details := Details{}
		if user.Role == models.RoleStudent {
			profile, err := q.GetProfileByUserID(ctx, userID)
			if errors.Is(err, store.ErrNotFound) {
				profile = &models.StudentProfile{ID: uuid.NewString(), UserID: userID}
				if err := q.CreateProfile(ctx, profile); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			if err := mergeProfile(profile, upd); err != nil {
				return err
			}
			if err := replaceSkills(ctx, q, profile.ID, models.SkillCategoryTechnical, upd.TechnicalSkills); err != nil {
				return err
			}
			if err := replaceSkills(ctx, q, profile.ID, models.SkillCategorySoft, upd.SoftSkills); err != nil {
				return err
			}
			if err := replaceInterests(ctx, q, profile.ID, upd.Interests); err != nil {
				return err
			}
			skills, err := q.ListStudentSkills(ctx, profile.ID)
			if err != nil {
				return err
			}
			interests, err := q.ListStudentInterests(ctx, profile.ID)
			if err != nil {
				return err
			}
			technical, soft := splitSkills(skills)
			profile.ProfileCompletion = ProfileCompletion(completionFor(user, profile, len(technical), len(soft), len(interests)))
			if err := q.UpdateProfile(ctx, profile); err != nil {
				return err
			}
			details["profile_id"] = profile.ID
			details["profile_completion"] = profile.ProfileCompletion
		}

		entry, err = RecordActivity(ctx, q, userID, ActionProfileUpdated, details, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := LoadProfileView(ctx, st, userID)
	if err != nil {
		return nil, nil, err
	}
	return view, entry, nil
}

func LoadProfileView(ctx context.Context, q store.Queries, userID string) (*ProfileView, error) {
	user, err := q.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &ProfileView{User: user}
	if user.Role != models.RoleStudent {
		return view, nil
	}
	profile, err := q.GetProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}
	skills, err := q.ListStudentSkills(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	interests, err := q.ListStudentInterests(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	view.Profile = profile
	view.TechnicalSkills, view.SoftSkills = splitSkills(skills)
	view.Interests = interests
	return view, nil
}

// LoadStudentDetail fetches the parts of a student record concurrently.
func LoadStudentDetail(ctx context.Context, q store.Queries, profileID string) (*StudentDetail, error) {
	detail := &StudentDetail{}
	var skills []models.StudentSkill
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Student, err = q.GetStudentSummary(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Profile, err = q.GetProfile(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = q.ListStudentSkills(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Interests, err = q.ListStudentInterests(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Goals, err = q.ListGoals(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Activities, err = q.ListActivities(gctx, profileID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	detail.TechnicalSkills, detail.SoftSkills = splitSkills(skills)
	return detail, nil
}
