package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name     Name
		document string
	}{
		{Recommendations, `{"careers":[{"title":"AI Engineer","description":"x","futureScope":"High"}]}`},
		{Recommendations, `{"careers":[],"note":"extra fields are fine"}`},
		{SkillGap, `{"have":["Go"],"need":["SQL"],"recommendations":[]}`},
		{Roadmap, `{"milestones":[{"title":"Foundation","resources":[{"title":"CS50","url":"https://cs50.harvard.edu/x/"}]}]}`},
		{Roadmap, `{"milestones":[{"title":"Certs","description":"d","resources":[],"certificate":"AWS CCP"}]}`},
		{SkillGapWithPlan, `{"skillGap":{"have":[],"need":[],"recommendations":[]},"roadmap":{"milestones":[]}}`},
		{ResumeAnalysis, `{"overallScore":72,"atsCompatibility":64.5,"strengths":["Go"]}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.NoError(t, Validate(tt.name, []byte(tt.document)))
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     Name
		document string
		field    string
	}{
		{Recommendations, `{"jobs":[]}`, "(root)"},
		{Recommendations, `{"careers":[{"description":"no title"}]}`, "careers.0"},
		{SkillGap, `{"have":[],"need":[]}`, "(root)"},
		{SkillGap, `{"have":"Go","need":[],"recommendations":[]}`, "have"},
		{Roadmap, `{"milestones":[{"title":""}]}`, "milestones.0.title"},
		{SkillGapWithPlan, `{"skillGap":{"have":[],"need":[],"recommendations":[]}}`, "(root)"},
		{ResumeAnalysis, `{"overallScore":"high","atsCompatibility":10}`, "overallScore"},
	}

	for _, tt := range tests {
		t.Run(string(tt.name)+"/"+tt.field, func(t *testing.T) {
			err := Validate(tt.name, []byte(tt.document))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
			assert.Contains(t, err.Error(), string(tt.name))
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate(Name("nope"), []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SkillGap, []byte(`{not json`))
	require.Error(t, err)
}

func TestValidator(t *testing.T) {
	validate := Validator(SkillGap)
	assert.NoError(t, validate([]byte(`{"have":[],"need":[],"recommendations":[]}`)))
	assert.Error(t, validate([]byte(`{}`)))
}
