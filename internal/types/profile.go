package types

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user's stored academic background, skills, interests and languages.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	AcademicInfo *string   `json:"academicInfo"`
	Skills       []string  `json:"skills"`
	Interests    []string  `json:"interests"`
	Languages    []string  `json:"languages"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Snapshot returns the profile fields used for prompting. A nil profile gives an empty snapshot.
func (p *Profile) Snapshot() ProfileSnapshot {
	if p == nil {
		return ProfileSnapshot{}
	}
	s := ProfileSnapshot{
		Skills:    p.Skills,
		Interests: p.Interests,
		Languages: p.Languages,
	}
	if p.AcademicInfo != nil {
		s.AcademicInfo = *p.AcademicInfo
	}
	return s
}

// UpsertProfileRequest creates or replaces the caller's profile.
// Missing lists are stored as empty lists.
type UpsertProfileRequest struct {
	AcademicInfo *string  `json:"academicInfo"`
	Skills       []string `json:"skills" validate:"omitempty,dive,max=200"`
	Interests    []string `json:"interests" validate:"omitempty,dive,max=200"`
	Languages    []string `json:"languages" validate:"omitempty,dive,max=100"`
}

// Validate validates the UpsertProfileRequest using the validator.
func (r *UpsertProfileRequest) Validate() error {
	return validate.Struct(r)
}

// Normalize replaces nil lists with empty ones and blank academic info with nil.
func (r *UpsertProfileRequest) Normalize() {
	r.Skills = nonNil(r.Skills)
	r.Interests = nonNil(r.Interests)
	r.Languages = nonNil(r.Languages)
	if r.AcademicInfo != nil && *r.AcademicInfo == "" {
		r.AcademicInfo = nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
