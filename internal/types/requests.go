package types

import "strings"

// RecommendationsRequest asks for career recommendations.
// Without an override the caller's stored profile is used.
type RecommendationsRequest struct {
	ProfileOverride *ProfileSnapshot `json:"profileOverride"`
}

// SkillGapRequest asks for a skill gap analysis.
type SkillGapRequest struct {
	TargetRole    string   `json:"targetRole" validate:"max=200"`
	CurrentSkills []string `json:"currentSkills" validate:"omitempty,dive,max=200"`
}

// RoadmapRequest asks for a roadmap, or a skill gap plus roadmap.
// CareerPath is accepted as an alias for TargetRole.
type RoadmapRequest struct {
	TargetRole    string   `json:"targetRole" validate:"max=200"`
	CareerPath    string   `json:"careerPath" validate:"max=200"`
	CurrentLevel  string   `json:"currentLevel" validate:"max=50"`
	CurrentSkills []string `json:"currentSkills" validate:"omitempty,dive,max=200"`
}

// Role returns TargetRole, falling back to CareerPath.
func (r *RoadmapRequest) Role() string {
	if role := strings.TrimSpace(r.TargetRole); role != "" {
		return role
	}
	return strings.TrimSpace(r.CareerPath)
}

// Level returns CurrentLevel, defaulting to beginner.
func (r *RoadmapRequest) Level() string {
	if level := strings.TrimSpace(r.CurrentLevel); level != "" {
		return level
	}
	return DefaultLevel
}

// ChatRequest is one user chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// RoadmapPDFRequest carries the roadmap to render.
type RoadmapPDFRequest struct {
	Roadmap *Roadmap `json:"roadmap" validate:"required"`
}

// Validate validates the SkillGapRequest using the validator.
func (r *SkillGapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RoadmapRequest using the validator.
func (r *RoadmapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	return validate.Struct(r)
}

// Validate validates the RoadmapPDFRequest using the validator.
func (r *RoadmapPDFRequest) Validate() error {
	return validate.Struct(r)
}
