package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
  "full_name": "Ada Lovelace",
  "contact_info": "ada@example.com",
  "professional_summary": "Backend engineer.",
  "skills": ["Go", "PostgreSQL"],
  "experience": [{"title": "Engineer", "company": "Analytical", "dates": "2020-2024", "achievements": ["Built things"]}],
  "education": [{"degree": "BSc", "institution": "London", "dates": "2016-2020", "details": ""}]
}`

func TestValidateOptimizedResume_Valid(t *testing.T) {
	assert.NoError(t, ValidateOptimizedResume(validResume))
}

func TestValidateOptimizedResume_MissingField(t *testing.T) {
	err := ValidateOptimizedResume(`{"full_name": "Ada", "contact_info": "", "professional_summary": "x", "skills": ["Go"], "experience": []}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "education")
}

func TestValidateOptimizedResume_WrongShape(t *testing.T) {
	err := ValidateOptimizedResume(`{
	  "full_name": "Ada", "contact_info": "", "professional_summary": "x",
	  "skills": "Go, SQL",
	  "experience": [{"title": "Engineer", "company": "X", "dates": "", "achievements": "did things"}],
	  "education": []
	}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "skills")
	assert.Contains(t, fields, "experience.0.achievements")
}

func TestValidateOptimizedResume_NotJSON(t *testing.T) {
	err := ValidateOptimizedResume("Here is your resume!")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestOptimizedResumeSchema_Compiles(t *testing.T) {
	assert.Contains(t, optimizedResumeSchema, `"professional_summary"`)

	schema, err := compileOptimizedResume()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}

func TestSchemaLoadError(t *testing.T) {
	err := &SchemaLoadError{Path: OptimizedResumeSchemaName, Message: "invalid embedded schema", Cause: assert.AnError}
	assert.Contains(t, err.Error(), "failed to load schema optimized_resume.schema.json")
	assert.ErrorIs(t, err, assert.AnError)
}
