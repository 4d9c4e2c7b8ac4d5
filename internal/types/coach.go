package types

import "math"

// TaskKind names one kind of coaching request.
type TaskKind string

// Task kinds
const (
	TaskRecommendations TaskKind = "recommendations"
	TaskSkillGap        TaskKind = "skill_gap"
	TaskRoadmap         TaskKind = "roadmap"
	TaskSkillGapRoadmap TaskKind = "skill_gap_roadmap"
	TaskResumeAnalysis  TaskKind = "resume_analysis"
	TaskChat            TaskKind = "chat"
)

// DefaultLevel is used when a roadmap request names no current level.
const DefaultLevel = "beginner"

// ProfileSnapshot is the profile data embedded in a recommendations prompt.
type ProfileSnapshot struct {
	AcademicInfo string   `json:"academicInfo"`
	Skills       []string `json:"skills"`
	Interests    []string `json:"interests"`
	Languages    []string `json:"languages"`
}

// ChatRole is the speaker of a chat message.
type ChatRole string

// Chat roles
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// TaskRequest carries the parameters of one coaching request.
// Fields a kind does not use are ignored.
type TaskRequest struct {
	Kind          TaskKind
	TargetRole    string
	CurrentSkills []string
	CurrentLevel  string
	Profile       ProfileSnapshot
	ResumeText    string
	Message       string
	// History is oldest-first
	History []ChatMessage
}

// Career is one recommended career path.
type Career struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FutureScope string `json:"futureScope"`
}

// Recommendations is the result of a career recommendation request.
type Recommendations struct {
	Careers []Career `json:"careers"`
}

// SkillGap compares the skills a learner has with those a role needs.
type SkillGap struct {
	Have            []string `json:"have"`
	Need            []string `json:"need"`
	Recommendations []string `json:"recommendations"`
}

// Resource is a learning resource link.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Milestone is one step of a roadmap.
type Milestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
	Certificate string     `json:"certificate,omitempty"`
}

// Roadmap is an ordered list of milestones.
type Roadmap struct {
	Milestones []Milestone `json:"milestones"`
}

// SkillGapRoadmap is the combined skill gap and roadmap result.
type SkillGapRoadmap struct {
	SkillGap SkillGap `json:"skillGap"`
	Roadmap  Roadmap  `json:"roadmap"`
}

// ResumeAnalysis scores a resume and lists feedback.
type ResumeAnalysis struct {
	OverallScore     float64  `json:"overallScore"`
	ATSCompatibility float64  `json:"atsCompatibility"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	MissingSkills    []string `json:"missingSkills"`
	Suggestions      []string `json:"suggestions"`
}

// Normalize replaces nil lists with empty ones.
func (r *Recommendations) Normalize() {
	if r.Careers == nil {
		r.Careers = []Career{}
	}
}

// Normalize replaces nil lists with empty ones.
func (g *SkillGap) Normalize() {
	g.Have = nonNil(g.Have)
	g.Need = nonNil(g.Need)
	g.Recommendations = nonNil(g.Recommendations)
}

// Normalize replaces nil lists with empty ones.
func (r *Roadmap) Normalize() {
	if r.Milestones == nil {
		r.Milestones = []Milestone{}
	}
	for i := range r.Milestones {
		if r.Milestones[i].Resources == nil {
			r.Milestones[i].Resources = []Resource{}
		}
	}
}

// Normalize normalizes both parts.
func (s *SkillGapRoadmap) Normalize() {
	s.SkillGap.Normalize()
	s.Roadmap.Normalize()
}

// Normalize clamps both scores to [0, 100] and replaces nil lists with empty ones.
func (a *ResumeAnalysis) Normalize() {
	a.OverallScore = clampScore(a.OverallScore)
	a.ATSCompatibility = clampScore(a.ATSCompatibility)
	a.Strengths = nonNil(a.Strengths)
	a.Improvements = nonNil(a.Improvements)
	a.MissingSkills = nonNil(a.MissingSkills)
	a.Suggestions = nonNil(a.Suggestions)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
