package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/careerconnect/internal/types"
)

// GetUserByEmail retrieves an account by email for authentication.
// Returns nil when no account exists.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, COALESCE(bio, ''), COALESCE(location, ''), COALESCE(resume_url, ''), created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.Bio, &u.Location, &u.ResumeURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// Candidate loads the full stored profile for a job seeker, including the
// JSONB skills, education, and experience columns.
func (db *DB) Candidate(ctx context.Context, userID uuid.UUID) (*types.CandidateContext, error) {
	var (
		user       types.CandidateContext
		skills     StringArray
		education  EducationArray
		experience ExperienceArray
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, role, COALESCE(bio, ''), COALESCE(location, ''),
		        COALESCE(skills, '[]'::jsonb), COALESCE(education, '[]'::jsonb),
		        COALESCE(experience, '[]'::jsonb), COALESCE(resume_url, '')
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.UserID, &user.Name, &user.Role, &user.Bio, &user.Location,
		&skills, &education, &experience, &user.ResumeRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %s", userID)
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	user.Skills = skills
	user.Education = education
	user.Experience = experience
	return &user, nil
}
