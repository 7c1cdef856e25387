package extract

import (
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Strategy turns a parsed page into a posting, or reports that it found nothing.
type Strategy interface {
	Name() string
	Extract(p *Page) (*types.JobPosting, bool)
}

// SiteProfile describes where one job board keeps each field. Selector lists are tried in order.
type SiteProfile struct {
	Site       string
	ParseTitle TitleParser

	// Company is fixed for single-employer career sites.
	Company string

	// CompanyFromURL enables deriving the company from the URL as a last resort.
	CompanyFromURL bool

	TitleSelectors       []string
	CompanySelectors     []string
	LocationSelectors    []string
	EmploymentSelectors  []string
	SenioritySelectors   []string
	DescriptionSelectors []string
	NoiseSelectors       []string

	// Extra tactics run after the selectors and before the generic fallbacks.
	ExtraEmployment []Tactic
	ExtraSeniority  []Tactic
}

// NewStrategy returns the strategy that runs profile through the shared field waterfalls.
func NewStrategy(profile SiteProfile) Strategy {
	if profile.ParseTitle == nil {
		profile.ParseTitle = FirstSegmentTitle
	}
	return &profileStrategy{profile: profile}
}

type profileStrategy struct {
	profile SiteProfile
}

func (s *profileStrategy) Name() string {
	return s.profile.Site
}

// Extract runs each field's waterfall. Only the posting's validity decides the match.
func (s *profileStrategy) Extract(p *Page) (*types.JobPosting, bool) {
	prof := s.profile
	parts := prof.ParseTitle(p.TitleText())

	posting := &types.JobPosting{Site: prof.Site, URL: canonicalURL(p)}

	var tactic string
	posting.Title, tactic = FirstMatch(p,
		Static("title-tag", parts.Title),
		Tactic{Name: "meta:og:title", Run: func(p *Page) string { return prof.ParseTitle(p.Meta("og:title")).Title }},
		InlineSelectors("title-selectors", prof.TitleSelectors...),
		StructuredTactic("title", func(ld *StructuredPosting) string { return ld.Title }),
		KeywordScanTactic(),
	)
	p.note("title", tactic)

	companyTactics := []Tactic{
		Static("static", prof.Company),
		InlineSelectors("company-selectors", prof.CompanySelectors...),
		MetaTactic("og:site_name"),
		StructuredTactic("company", func(ld *StructuredPosting) string { return ld.Company }),
		Static("title-tag", parts.Company),
	}
	if prof.CompanyFromURL {
		companyTactics = append(companyTactics, Tactic{Name: "url", Run: func(p *Page) string { return CompanyFromURL(p.URL) }})
	}
	posting.Company, tactic = FirstMatch(p, companyTactics...)
	p.note("company", tactic)

	posting.Location, tactic = FirstMatch(p,
		InlineSelectors("location-selectors", prof.LocationSelectors...),
		StructuredTactic("location", func(ld *StructuredPosting) string { return ld.Location }),
		Static("title-tag", parts.Location),
	)
	p.note("location", tactic)

	posting.Description, tactic = FirstMatch(p,
		BlockSelectors("description-selectors", prof.NoiseSelectors, prof.DescriptionSelectors...),
		StructuredTactic("description", func(ld *StructuredPosting) string { return ld.Description }),
		SubstantialBlocksTactic(prof.NoiseSelectors),
		Static("synthesized", SynthesizedDescription(posting.Title, posting.Company)),
	)
	p.note("description", tactic)

	employment := append([]Tactic{InlineSelectors("employment-selectors", prof.EmploymentSelectors...)}, prof.ExtraEmployment...)
	employment = append(employment,
		StructuredTactic("employment_type", func(ld *StructuredPosting) string { return ld.EmploymentType }),
		Tactic{Name: "inferred", Run: func(*Page) string {
			return InferEmploymentType(posting.Title + "\n" + posting.Description)
		}},
	)
	posting.EmploymentType, tactic = FirstMatch(p, employment...)
	p.note("employment_type", tactic)

	seniority := append([]Tactic{InlineSelectors("seniority-selectors", prof.SenioritySelectors...)}, prof.ExtraSeniority...)
	seniority = append(seniority, Tactic{Name: "inferred", Run: func(*Page) string {
		return InferSeniority(posting.Title)
	}})
	posting.Seniority, tactic = FirstMatch(p, seniority...)
	p.note("seniority", tactic)

	// tactic values are already clean; only fold them onto one line
	posting.Title = ingestion.SingleLine(posting.Title)
	posting.Company = ingestion.SingleLine(posting.Company)
	posting.Location = ingestion.SingleLine(posting.Location)

	if !posting.Valid() {
		return nil, false
	}
	return posting, true
}
