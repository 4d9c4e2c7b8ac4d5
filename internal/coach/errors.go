package coach

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
)

// TaskError is a failed coaching task. The cause is an llm error.
type TaskError struct {
	Kind     types.TaskKind
	Provider llm.Provider
	Err      error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// StatusFor maps a coaching error to an HTTP status and user-facing message.
// Every model-side failure is 503; the message tells "not configured" apart
// from "invalid response" and from a failed call.
func StatusFor(err error) (int, string) {
	var te *TaskError
	if !errors.As(err, &te) {
		return http.StatusInternalServerError, "Internal server error"
	}

	name, keyVar := providerLabels(te.Provider)
	switch {
	case llm.IsNotConfigured(te.Err):
		return http.StatusServiceUnavailable, notConfiguredMessage(te.Kind, name, keyVar)
	case llm.IsParseError(te.Err):
		return http.StatusServiceUnavailable, invalidResponseMessage(te.Kind, name)
	default:
		return http.StatusServiceUnavailable, callFailedMessage(te.Kind, name)
	}
}

func providerLabels(p llm.Provider) (name, keyVar string) {
	if p == llm.ProviderAnthropic {
		return "Claude", "ANTHROPIC_API_KEY"
	}
	return "Gemini", "GEMINI_API_KEY"
}

func notConfiguredMessage(kind types.TaskKind, name, keyVar string) string {
	switch kind {
	case types.TaskRoadmap, types.TaskSkillGapRoadmap:
		return fmt.Sprintf("%s API is not configured. Please set %s to generate a live roadmap.", name, keyVar)
	case types.TaskResumeAnalysis:
		return fmt.Sprintf("%s API is not configured.", name)
	default:
		return fmt.Sprintf("%s API is not configured. Please set %s.", name, keyVar)
	}
}

func invalidResponseMessage(kind types.TaskKind, name string) string {
	switch kind {
	case types.TaskSkillGapRoadmap:
		return fmt.Sprintf("%s returned an invalid response. Please retry.", name)
	case types.TaskResumeAnalysis:
		return fmt.Sprintf("Failed to analyze resume with %s.", name)
	case types.TaskChat:
		return fmt.Sprintf("%s returned an empty reply. Please retry.", name)
	default:
		return fmt.Sprintf("%s returned an invalid response.", name)
	}
}

func callFailedMessage(kind types.TaskKind, name string) string {
	switch kind {
	case types.TaskRecommendations:
		return fmt.Sprintf("Failed to fetch recommendations from %s.", name)
	case types.TaskSkillGap:
		return fmt.Sprintf("Failed to fetch skill gap from %s.", name)
	case types.TaskRoadmap:
		return fmt.Sprintf("Failed to fetch roadmap from %s. Ensure the Generative Language API is enabled for your project and try again.", name)
	case types.TaskSkillGapRoadmap:
		return fmt.Sprintf("Failed to fetch from %s. Ensure the API is enabled and the key is valid.", name)
	case types.TaskResumeAnalysis:
		return fmt.Sprintf("Failed to analyze resume with %s.", name)
	default:
		return fmt.Sprintf("Failed to get a reply from %s.", name)
	}
}
