package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

const profileColumns = `id, user_id, academic_info, skills, interests, languages, created_at, updated_at`

// GetProfile retrieves the profile of a user; nil, nil when none is stored.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpsertProfile creates or replaces the profile of a user.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*types.Profile, error) {
	req.Normalize()
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, academic_info, skills, interests, languages)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   academic_info = EXCLUDED.academic_info,
		   skills = EXCLUDED.skills,
		   interests = EXCLUDED.interests,
		   languages = EXCLUDED.languages,
		   updated_at = NOW()
		 RETURNING `+profileColumns,
		userID, req.AcademicInfo, req.Skills, req.Interests, req.Languages,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

func scanProfile(row rowScanner) (*types.Profile, error) {
	var p types.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.AcademicInfo, &p.Skills, &p.Interests, &p.Languages, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
	return &p, nil
}
