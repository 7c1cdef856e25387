package types

import "github.com/go-playground/validator/v10"

// OptimizedResume is the structured resume returned by the model chain.
type OptimizedResume struct {
	FullName            string       `json:"full_name" validate:"required"`
	ContactInfo         string       `json:"contact_info"`
	ProfessionalSummary string       `json:"professional_summary" validate:"required"`
	Skills              []string     `json:"skills" validate:"required,min=1,dive,required"`
	Experience          []Experience `json:"experience" validate:"required,dive"`
	Education           []Education  `json:"education" validate:"required,dive"`
}

// Experience is one position in the experience section.
type Experience struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Dates        string   `json:"dates"`
	Achievements []string `json:"achievements" validate:"required"`
}

// Education is one entry in the education section.
type Education struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Dates       string `json:"dates"`
	Details     string `json:"details"`
}

// Validate checks field-level constraints the JSON schema cannot express.
func (r *OptimizedResume) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
