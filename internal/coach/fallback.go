package coach

import (
	"slices"
	"strings"

	"github.com/jonathan/career-coach/internal/types"
)

// defaultFallbackRole is used for titles when no role is given, and its
// resources when the role matches no catalog key.
const defaultFallbackRole = "AI Engineer"

type roleResources struct {
	key       string
	resources []types.Resource
}

var (
	foundationResources = []types.Resource{
		{Title: "CS50 Intro to Computer Science", URL: "https://cs50.harvard.edu/x/"},
		{Title: "Khan Academy - Math Refresher", URL: "https://www.khanacademy.org/"},
	}

	interviewResources = []types.Resource{
		{Title: "Project Ideas", URL: "https://github.com/florinpop17/app-ideas"},
		{Title: "Interview Prep", URL: "https://www.interviewbit.com/"},
	}

	// catalog is scanned in order; the first key contained in the role wins.
	catalog = []roleResources{
		{key: "ai engineer", resources: []types.Resource{
			{Title: "Python for ML – FreeCodeCamp", URL: "https://www.freecodecamp.org/learn/machine-learning-with-python/"},
			{Title: "Deep Learning Specialization", URL: "https://www.coursera.org/specializations/deep-learning"},
		}},
		{key: "data scientist", resources: []types.Resource{
			{Title: "Data Science Roadmap – Kaggle", URL: "https://www.kaggle.com/learn"},
			{Title: "Statistics Refresher", URL: "https://seeing-theory.brown.edu/"},
		}},
		{key: "data analyst", resources: []types.Resource{
			{Title: "Google Data Analytics Certificate", URL: "https://grow.google/certificates/data-analytics/"},
			{Title: "SQL – Mode Analytics", URL: "https://mode.com/sql-tutorial/"},
		}},
		{key: "frontend developer", resources: []types.Resource{
			{Title: "React Docs – Learn", URL: "https://react.dev/learn"},
			{Title: "TailwindCSS Tutorial", URL: "https://tailwindcss.com/docs/installation"},
		}},
		{key: "backend developer", resources: []types.Resource{
			{Title: "Node.js/Express Guide", URL: "https://expressjs.com/en/starter/installing.html"},
			{Title: "SQLBolt (SQL Basics)", URL: "https://sqlbolt.com/"},
		}},
		{key: "devops engineer", resources: []types.Resource{
			{Title: "Docker Getting Started", URL: "https://docs.docker.com/get-started/"},
			{Title: "Kubernetes Basics", URL: "https://kubernetes.io/docs/tutorials/kubernetes-basics/"},
		}},
		{key: "ux designer", resources: []types.Resource{
			{Title: "Google UX Design Certificate", URL: "https://grow.google/certificates/ux-design/"},
			{Title: "NNGroup UX Articles", URL: "https://www.nngroup.com/articles/"},
		}},
	}
)

// MatchRole returns the catalog key for role: the first key that is a
// substring of the lowercased role, or "ai engineer" when none is.
func MatchRole(role string) string {
	normalized := strings.ToLower(role)
	for _, c := range catalog {
		if strings.Contains(normalized, c.key) {
			return c.key
		}
	}
	return catalog[0].key
}

func resourcesFor(key string) []types.Resource {
	for _, c := range catalog {
		if c.key == key {
			return slices.Clone(c.resources)
		}
	}
	return slices.Clone(catalog[0].resources)
}

// FallbackRoadmap builds the offline three-milestone roadmap for role. It never fails.
// The level is accepted for symmetry with the live roadmap and does not change the result.
func FallbackRoadmap(role, _ string) types.Roadmap {
	display := strings.TrimSpace(role)
	if display == "" {
		display = defaultFallbackRole
	}

	return types.Roadmap{Milestones: []types.Milestone{
		{
			Title:       "Foundation for " + display,
			Description: "Get started with core fundamentals using free resources",
			Resources:   slices.Clone(foundationResources),
		},
		{
			Title:       "Core " + display + " Skills",
			Description: "Hands-on skills and a mini project",
			Resources:   resourcesFor(MatchRole(display)),
		},
		{
			Title:       "Portfolio + Interview Prep",
			Description: "Build 1-2 projects and prepare for interviews",
			Resources:   slices.Clone(interviewResources),
		},
	}}
}

// FallbackRecommendations returns the fixed offline career list.
func FallbackRecommendations() types.Recommendations {
	return types.Recommendations{Careers: []types.Career{
		{Title: "AI Engineer", Description: "Build and deploy ML systems at scale", FutureScope: "Very High"},
		{Title: "Data Analyst", Description: "Analyze data for insights and reporting", FutureScope: "High"},
		{Title: "Frontend Developer", Description: "Create modern web experiences", FutureScope: "High"},
	}}
}

// FallbackSkillGap echoes the current skills as "have" with a fixed "need" list.
func FallbackSkillGap(currentSkills []string) types.SkillGap {
	have := slices.Clone(currentSkills)
	if have == nil {
		have = []string{}
	}
	return types.SkillGap{
		Have:            have,
		Need:            []string{"Communication", "SQL", "Git"},
		Recommendations: []string{"Complete a mini project", "Take a certificate course"},
	}
}
