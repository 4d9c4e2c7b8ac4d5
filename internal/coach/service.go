package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
)

// Mode selects what happens when the model path fails.
type Mode string

const (
	// ModeStrict surfaces every model failure to the caller.
	ModeStrict Mode = "strict"
	// ModeDegraded answers recommendations, skill gap and roadmap requests
	// from the offline catalog when the model fails. Resume analysis and chat
	// have no offline answer and still fail.
	ModeDegraded Mode = "degraded"
)

// ParseMode parses a mode name; anything other than "degraded" is strict.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeDegraded)) {
		return ModeDegraded
	}
	return ModeStrict
}

// Chat generation budget
const (
	chatMaxOutputTokens = 400
	chatTemperature     = 0.7
	chatTopP            = 0.9
)

// Options configures a Service.
type Options struct {
	Mode   Mode
	Retry  llm.RetryPolicy
	Logger *logger.Logger
}

// Service runs coaching tasks against a model client.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	client llm.Client
	mode   Mode
	retry  llm.RetryPolicy
	log    *logger.Logger
}

// NewService creates a Service. A nil client means the model is not configured.
func NewService(client llm.Client, opts Options) *Service {
	if opts.Mode == "" {
		opts.Mode = ModeStrict
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		client: client,
		mode:   opts.Mode,
		retry:  opts.Retry,
		log:    opts.Logger,
	}
}

// Configured reports whether a model client is available.
func (s *Service) Configured() bool {
	return s.client != nil
}

// RequireConfigured returns the not-configured TaskError for kind when no
// model client is available, so callers can fail before doing upload work.
func (s *Service) RequireConfigured(kind types.TaskKind) error {
	if s.Configured() {
		return nil
	}
	return &TaskError{Kind: kind, Provider: s.provider(), Err: &llm.NotConfiguredError{Provider: s.provider()}}
}

// Mode returns the failure mode.
func (s *Service) Mode() Mode {
	return s.mode
}

func (s *Service) provider() llm.Provider {
	if s.client == nil {
		return llm.ProviderGemini
	}
	return s.client.Provider()
}

// RecommendCareers suggests career paths for a profile.
func (s *Service) RecommendCareers(ctx context.Context, profile types.ProfileSnapshot) (*types.Recommendations, error) {
	req := types.TaskRequest{Kind: types.TaskRecommendations, Profile: profile}
	var out types.Recommendations
	if err := s.runJSON(ctx, req, schemas.Recommendations, &out); err != nil {
		if s.degrade(req.Kind, err) {
			fallback := FallbackRecommendations()
			return &fallback, nil
		}
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// AnalyzeSkillGap compares current skills with what targetRole needs.
func (s *Service) AnalyzeSkillGap(ctx context.Context, targetRole string, currentSkills []string) (*types.SkillGap, error) {
	req := types.TaskRequest{Kind: types.TaskSkillGap, TargetRole: targetRole, CurrentSkills: currentSkills}
	var out types.SkillGap
	if err := s.runJSON(ctx, req, schemas.SkillGap, &out); err != nil {
		if s.degrade(req.Kind, err) {
			fallback := FallbackSkillGap(currentSkills)
			return &fallback, nil
		}
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// GenerateRoadmap builds a milestone roadmap for targetRole at currentLevel.
func (s *Service) GenerateRoadmap(ctx context.Context, targetRole, currentLevel string) (*types.Roadmap, error) {
	req := types.TaskRequest{Kind: types.TaskRoadmap, TargetRole: targetRole, CurrentLevel: currentLevel}
	var out types.Roadmap
	if err := s.runJSON(ctx, req, schemas.Roadmap, &out); err != nil {
		if s.degrade(req.Kind, err) {
			fallback := FallbackRoadmap(targetRole, currentLevel)
			return &fallback, nil
		}
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// SkillGapWithRoadmap produces a skill gap and a roadmap from one model call.
func (s *Service) SkillGapWithRoadmap(ctx context.Context, targetRole string, currentSkills []string, currentLevel string) (*types.SkillGapRoadmap, error) {
	req := types.TaskRequest{
		Kind:          types.TaskSkillGapRoadmap,
		TargetRole:    targetRole,
		CurrentSkills: currentSkills,
		CurrentLevel:  currentLevel,
	}
	var out types.SkillGapRoadmap
	if err := s.runJSON(ctx, req, schemas.SkillGapWithPlan, &out); err != nil {
		if s.degrade(req.Kind, err) {
			return &types.SkillGapRoadmap{
				SkillGap: FallbackSkillGap(currentSkills),
				Roadmap:  FallbackRoadmap(targetRole, currentLevel),
			}, nil
		}
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// AnalyzeResume scores resume text. Scores are clamped to [0, 100].
func (s *Service) AnalyzeResume(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error) {
	req := types.TaskRequest{Kind: types.TaskResumeAnalysis, ResumeText: resumeText}
	var out types.ResumeAnalysis
	if err := s.runJSON(ctx, req, schemas.ResumeAnalysis, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// Chat answers message given the prior conversation (oldest first).
// Only the last HistoryWindow messages reach the prompt.
func (s *Service) Chat(ctx context.Context, message string, history []types.ChatMessage) (string, error) {
	prompt := BuildPrompt(types.TaskRequest{Kind: types.TaskChat, Message: message, History: history})
	opts := llm.GenerateOptions{
		Tier:            llm.TierLite,
		Temperature:     llm.Float32(chatTemperature),
		TopP:            llm.Float32(chatTopP),
		MaxOutputTokens: llm.Int32(chatMaxOutputTokens),
	}

	reply, err := llm.Generate(ctx, s.client, string(types.TaskChat), prompt, opts, s.retryPolicy(types.TaskChat))
	if err != nil {
		s.log.Warn("chat generation failed", "error", err)
		return "", &TaskError{Kind: types.TaskChat, Provider: s.provider(), Err: err}
	}
	return strings.TrimSpace(reply), nil
}

func (s *Service) runJSON(ctx context.Context, req types.TaskRequest, schema schemas.Name, out any) error {
	jsonReq := llm.JSONRequest{
		Task:     string(req.Kind),
		Prompt:   BuildPrompt(req),
		Options:  llm.GenerateOptions{Tier: tierFor(req.Kind)},
		Validate: schemas.Validator(schema),
	}

	data, err := llm.GenerateJSON(ctx, s.client, jsonReq, s.retryPolicy(req.Kind))
	if err != nil {
		return &TaskError{Kind: req.Kind, Provider: s.provider(), Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TaskError{Kind: req.Kind, Provider: s.provider(), Err: &llm.ParseError{
			Message: fmt.Sprintf("%s result does not decode", req.Kind),
			Cause:   err,
		}}
	}
	return nil
}

func (s *Service) retryPolicy(kind types.TaskKind) llm.RetryPolicy {
	policy := s.retry
	policy.OnRetry = func(attempt int, err error) {
		s.log.Warn("model attempt failed, retrying", "task", kind, "attempt", attempt, "error", err)
	}
	return policy
}

// degrade reports whether a failed task should be answered from the offline catalog.
func (s *Service) degrade(kind types.TaskKind, err error) bool {
	if s.mode != ModeDegraded {
		return false
	}
	s.log.Warn("using offline fallback", "task", kind, "error", err)
	return true
}

func tierFor(kind types.TaskKind) llm.ModelTier {
	if kind == types.TaskResumeAnalysis {
		return llm.TierAdvanced
	}
	return llm.TierStandard
}
