package extract

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferSeniority(t *testing.T) {
	tests := map[string]string{
		"Senior Software Engineer":    "Senior",
		"Sr. Data Engineer":           "Senior",
		"Software Engineering Intern": "Internship",
		"VP of Engineering":           "Executive",
		"Director, Platform":          "Director",
		"Staff Engineer":              "Staff",
		"Jr. Developer":               "Entry level",
		"Software Engineer":           "",
		"":                            "",
	}
	for title, want := range tests {
		assert.Equal(t, want, InferSeniority(title), title)
	}
}

func TestInferEmploymentType(t *testing.T) {
	assert.Equal(t, "Full-time", InferEmploymentType("This is a full-time role based in Austin."))
	assert.Equal(t, "Part-time", InferEmploymentType("Part time, 20 hours a week"))
	assert.Equal(t, "Contract", InferEmploymentType("6 month contract with option to extend"))
	assert.Equal(t, "", InferEmploymentType("Build great software."))
}

func TestCompanyFromURL(t *testing.T) {
	tests := map[string]string{
		"https://boards.greenhouse.io/acme-corp/jobs/123":   "Acme Corp",
		"https://jobs.lever.co/initech/abc-def":             "Initech",
		"https://jobs.ashbyhq.com/ramp/1234":                "Ramp",
		"https://acme.wd5.myworkdayjobs.com/en-US/External": "Acme",
		"https://careers.initech.com/jobs/42":               "Initech",
		"https://www.hooli.com/careers":                     "Hooli",
		"https://jobs.lever.co/":                            "",
	}
	for raw, want := range tests {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, CompanyFromURL(u), raw)
	}
	assert.Equal(t, "", CompanyFromURL(nil))
}
