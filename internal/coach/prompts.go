// Package coach turns coaching requests into model prompts, recovers structured
// results from the replies and supplies offline results in degraded mode.
package coach

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
)

// HistoryWindow is the number of most recent chat messages rendered into a chat prompt.
const HistoryWindow = 8

// Template keys outside the per-task map
const (
	jsonSuffixKey = "json-suffix"
	chatKey       = "chat"
	chatSystemKey = "chat-system"
)

var taskPromptKeys = map[types.TaskKind]string{
	types.TaskRecommendations: "recommendations",
	types.TaskSkillGap:        "skill-gap",
	types.TaskRoadmap:         "roadmap",
	types.TaskSkillGapRoadmap: "skill-gap-roadmap",
	types.TaskResumeAnalysis:  "resume-analysis",
}

// BuildPrompt renders the instruction for req. It never fails: empty
// parameters only make the prompt less specific. Structured tasks end with
// the JSON-only instruction; chat gets the mentor policy and the history window.
func BuildPrompt(req types.TaskRequest) string {
	if req.Kind == types.TaskChat {
		return buildChatPrompt(req.Message, req.History)
	}

	key, ok := taskPromptKeys[req.Kind]
	if !ok {
		key = taskPromptKeys[types.TaskRecommendations]
	}
	level := strings.TrimSpace(req.CurrentLevel)
	if level == "" {
		level = types.DefaultLevel
	}

	body := prompts.Format(prompts.MustGet(prompts.CoachFile, key), structuredValues(req, level))
	return body + "\n\n" + prompts.MustGet(prompts.CoachFile, jsonSuffixKey)
}

func structuredValues(req types.TaskRequest, level string) map[string]string {
	return map[string]string{
		"Skills":        joinList(req.Profile.Skills),
		"Interests":     joinList(req.Profile.Interests),
		"AcademicInfo":  req.Profile.AcademicInfo,
		"TargetRole":    req.TargetRole,
		"CurrentSkills": joinList(req.CurrentSkills),
		"CurrentLevel":  level,
		"ResumeText":    req.ResumeText,
	}
}

func buildChatPrompt(message string, history []types.ChatMessage) string {
	return prompts.Format(prompts.MustGet(prompts.CoachFile, chatKey), chatValues(message, history))
}

func chatValues(message string, history []types.ChatMessage) map[string]string {
	return map[string]string{
		"System":  prompts.MustGet(prompts.CoachFile, chatSystemKey),
		"History": renderHistory(RecentHistory(history)),
		"Message": message,
	}
}

// CheckPrompts verifies that every coaching template is embedded and uses
// only placeholders BuildPrompt fills.
func CheckPrompts() error {
	keys, err := prompts.List(prompts.CoachFile)
	if err != nil {
		return err
	}

	want := map[string]map[string]string{
		jsonSuffixKey: nil,
		chatSystemKey: nil,
		chatKey:       chatValues("", nil),
	}
	for _, key := range taskPromptKeys {
		want[key] = structuredValues(types.TaskRequest{}, types.DefaultLevel)
	}

	for key, values := range want {
		if !slices.Contains(keys, key) {
			return fmt.Errorf("prompt %q missing from %s", key, prompts.CoachFile)
		}
		for _, name := range prompts.Placeholders(prompts.MustGet(prompts.CoachFile, key)) {
			if _, ok := values[name]; !ok {
				return fmt.Errorf("prompt %q uses unknown placeholder %q", key, name)
			}
		}
	}
	return nil
}

// RecentHistory returns the last HistoryWindow messages, oldest first.
func RecentHistory(history []types.ChatMessage) []types.ChatMessage {
	if len(history) <= HistoryWindow {
		return history
	}
	return history[len(history)-HistoryWindow:]
}

func renderHistory(history []types.ChatMessage) string {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString("\n")
		if m.Role == types.RoleUser {
			sb.WriteString("User: ")
		} else {
			sb.WriteString("Assistant: ")
		}
		sb.WriteString(m.Content)
	}
	return sb.String()
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
