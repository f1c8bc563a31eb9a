package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/devconnect-be/internal/database"
	"github.com/isdelr/devconnect-be/internal/models"
)

// ProfileServiceProvider defines the interface for profile services.
type ProfileServiceProvider interface {
	GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error)
	GetAllProfiles(ctx context.Context) ([]models.Profile, error)
	UpsertProfile(ctx context.Context, patch ProfilePatch) (models.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, exp models.Experience) (models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (models.Profile, error)
	AddEducation(ctx context.Context, userID string, edu models.Education) (models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (models.Profile, error)
	CountOrphanedProfiles(ctx context.Context) (int, error)
}

// ProfileService provides business logic for profile management.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Profiles are always read together with the owner's public fields.
const selectProfile = `
	SELECT p.id, p.user_id, COALESCE(u.name, ''), COALESCE(u.avatar, ''),
	       p.company, p.website, p.location, p.bio, p.status, p.github_username,
	       p.skills_json, p.social_json, p.experience_json, p.education_json, p.created_at
	FROM profiles p LEFT JOIN users u ON u.id = p.user_id`

// scanProfile is a helper to scan a profile from a row or rows object.
func scanProfile(row scanner) (models.Profile, error) {
	var p models.Profile
	var createdAt string

	err := row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Website, &p.Location, &p.Bio, &p.Status, &p.GithubUsername,
		&p.SkillsJSON, &p.SocialJSON, &p.ExperienceJSON, &p.EducationJSON, &createdAt,
	)
	if err != nil {
		return p, err
	}

	if p.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return p, err
	}
	if err := p.PrepareForAPI(); err != nil {
		return p, fmt.Errorf("decode profile %s: %w", p.ID, err)
	}
	return p, nil
}

// GetProfileByUserID retrieves the profile owned by userID.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error) {
	row := s.db.QueryRowContext(ctx, selectProfile+" WHERE p.user_id = ?", userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return models.Profile{}, err
	}
	return p, nil
}

// GetAllProfiles retrieves every profile. The result is never nil.
func (s *ProfileService) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, selectProfile+" ORDER BY p.created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpsertProfile applies patch to the caller's profile, creating it on first
// submission. Concurrent submissions are not coordinated; the last write wins.
func (s *ProfileService) UpsertProfile(ctx context.Context, patch ProfilePatch) (models.Profile, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM profiles WHERE user_id = ?", patch.UserID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = s.insertProfile(ctx, patch)
	case err == nil:
		err = s.updateProfile(ctx, patch)
	}
	if err != nil {
		return models.Profile{}, err
	}
	return s.GetProfileByUserID(ctx, patch.UserID)
}

func (s *ProfileService) insertProfile(ctx context.Context, patch ProfilePatch) error {
	p := models.Profile{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	patch.Apply(&p)
	p.PrepareForSave()

	const query = `
		INSERT INTO profiles(id, user_id, company, website, location, bio, status, github_username,
		                     skills_json, social_json, experience_json, education_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		p.ID, p.User.ID, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		p.SkillsJSON, p.SocialJSON, p.ExperienceJSON, p.EducationJSON, database.FormatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// updateProfile writes only the columns present in the patch.
func (s *ProfileService) updateProfile(ctx context.Context, patch ProfilePatch) error {
	sets := make([]string, 0, len(patch.Scalars)+2)
	args := make([]interface{}, 0, len(patch.Scalars)+3)

	for _, f := range patch.Scalars {
		sets = append(sets, f.Column+" = ?")
		args = append(args, f.Value)
	}

	// Marshal through the model so empty collections are stored as [] and {}.
	var nested models.Profile
	patch.Apply(&nested)
	nested.PrepareForSave()

	if patch.HasSkills {
		sets = append(sets, "skills_json = ?")
		args = append(args, nested.SkillsJSON)
	}
	sets = append(sets, "social_json = ?")
	args = append(args, nested.SocialJSON)
	args = append(args, patch.UserID)

	query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile owned by userID.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	return err
}

// AddExperience prepends exp to the caller's experience list.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp models.Experience) (models.Profile, error) {
	exp.ID = uuid.New().String()
	return s.modify(ctx, userID, func(p *models.Profile) {
		p.Experience = append([]models.Experience{exp}, p.Experience...)
	})
}

// RemoveExperience drops the entry with expID. An unknown id leaves the list unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (models.Profile, error) {
	return s.modify(ctx, userID, func(p *models.Profile) {
		kept := make([]models.Experience, 0, len(p.Experience))
		for _, e := range p.Experience {
			if e.ID != expID {
				kept = append(kept, e)
			}
		}
		p.Experience = kept
	})
}

// AddEducation prepends edu to the caller's education list.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu models.Education) (models.Profile, error) {
	edu.ID = uuid.New().String()
	return s.modify(ctx, userID, func(p *models.Profile) {
		p.Education = append([]models.Education{edu}, p.Education...)
	})
}

// RemoveEducation drops the entry with eduID. An unknown id leaves the list unchanged.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (models.Profile, error) {
	return s.modify(ctx, userID, func(p *models.Profile) {
		kept := make([]models.Education, 0, len(p.Education))
		for _, e := range p.Education {
			if e.ID != eduID {
				kept = append(kept, e)
			}
		}
		p.Education = kept
	})
}

// modify loads the caller's profile, applies fn to it and stores the
// experience and education lists back.
func (s *ProfileService) modify(ctx context.Context, userID string, fn func(p *models.Profile)) (models.Profile, error) {
	p, err := s.GetProfileByUserID(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	fn(&p)
	p.PrepareForSave()

	_, err = s.db.ExecContext(ctx, "UPDATE profiles SET experience_json = ?, education_json = ? WHERE id = ?",
		p.ExperienceJSON, p.EducationJSON, p.ID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to update profile %s: %w", p.ID, err)
	}
	return p, nil
}

// CountOrphanedProfiles counts profiles whose owner no longer exists.
func (s *ProfileService) CountOrphanedProfiles(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM profiles p WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = p.user_id)").Scan(&n)
	return n, err
}
