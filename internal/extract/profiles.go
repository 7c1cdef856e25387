package extract

import "github.com/jonathan/resume-optimizer/internal/types"

// genericDescriptionSelectors are tried on every site after its own selectors.
var genericDescriptionSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"[itemprop='description']",
	"main",
	"article",
	".content",
	"#content",
}

func withGeneric(selectors ...string) []string {
	return append(selectors, genericDescriptionSelectors...)
}

// Mastercard reads careers.mastercard.com (Phenom People).
func Mastercard() Strategy {
	return NewStrategy(SiteProfile{
		Site:              types.SiteMastercard,
		Company:           "Mastercard",
		TitleSelectors:    []string{"h1.job-title", ".job-title", "h1"},
		LocationSelectors: []string{".job-location", "[data-ph-at-id='job-location']", ".location"},
		EmploymentSelectors: []string{
			"[data-ph-at-id='job-type']", ".job-type",
		},
		DescriptionSelectors: withGeneric(".jd-info", "[data-ph-at-id='jobdescription-text']", ".job-description-container"),
		NoiseSelectors:       []string{".ph-a11y-skip-link", ".similar-jobs", ".job-alert"},
	})
}

// Greenhouse reads boards.greenhouse.io and job-boards.greenhouse.io.
func Greenhouse() Strategy {
	return NewStrategy(SiteProfile{
		Site:              types.SiteGreenhouse,
		ParseTitle:        GreenhouseTitle,
		CompanyFromURL:    true,
		TitleSelectors:    []string{".job__title h1", "h1.app-title", ".app-title", "h1"},
		CompanySelectors:  []string{".company-name", ".job__company"},
		LocationSelectors: []string{".job__location", ".location"},
		DescriptionSelectors: withGeneric(
			".job__description.body",
			".job__description",
			".job-description__content",
			".job-post-container",
		),
		NoiseSelectors: []string{
			".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper",
			"#usa_self_id_section", ".post-apply",
		},
	})
}

// Lever reads jobs.lever.co.
func Lever() Strategy {
	return NewStrategy(SiteProfile{
		Site:           types.SiteLever,
		ParseTitle:     LeverTitle,
		CompanyFromURL: true,
		TitleSelectors: []string{".posting-headline h2", "h2"},
		LocationSelectors: []string{
			".posting-categories .location", ".posting-categories .sort-by-location",
		},
		EmploymentSelectors: []string{
			".posting-categories .commitment", ".posting-categories .sort-by-commitment",
		},
		DescriptionSelectors: withGeneric(
			".section-wrapper.page-full-width",
			".posting-description",
			".posting-page",
		),
		NoiseSelectors: []string{".apply-section", ".lever-application-form", ".posting-apply", ".postings-btn-wrapper"},
	})
}

// Netflix reads jobs.netflix.com and explore.jobs.netflix.net.
func Netflix() Strategy {
	return NewStrategy(SiteProfile{
		Site:              types.SiteNetflix,
		Company:           "Netflix",
		TitleSelectors:    []string{".position-title", "h1.title", "h1"},
		LocationSelectors: []string{".position-location", ".location", "[data-test-id='job-location']"},
		EmploymentSelectors: []string{
			".position-type", "[data-test-id='job-type']",
		},
		DescriptionSelectors: withGeneric(".position-job-description", ".job-description-content"),
		NoiseSelectors:       []string{".similar-jobs", ".position-apply"},
	})
}

// Workday reads <tenant>.myworkdayjobs.com.
func Workday() Strategy {
	return NewStrategy(SiteProfile{
		Site:           types.SiteWorkday,
		CompanyFromURL: true,
		TitleSelectors: []string{"[data-automation-id='jobPostingHeader']", "h2", "h1"},
		LocationSelectors: []string{
			"[data-automation-id='locations'] dd", "[data-automation-id='locations']",
		},
		EmploymentSelectors: []string{
			"[data-automation-id='time'] dd", "[data-automation-id='time']",
		},
		DescriptionSelectors: withGeneric(
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='jobDescription']",
			".WDXK",
			".gwt-HTML",
		),
		NoiseSelectors: []string{"[data-automation-id='applyButton']", ".application-section", ".WDAF"},
	})
}

// LinkedIn reads public linkedin.com/jobs/view pages.
func LinkedIn() Strategy {
	const (
		item  = ".description__job-criteria-item"
		label = ".description__job-criteria-subheader"
		value = ".description__job-criteria-text"
	)
	return NewStrategy(SiteProfile{
		Site:             types.SiteLinkedIn,
		ParseTitle:       LinkedInTitle,
		TitleSelectors:   []string{".top-card-layout__title", "h1.topcard__title", "h1"},
		CompanySelectors: []string{".topcard__org-name-link", ".top-card-layout__second-subline a"},
		LocationSelectors: []string{
			".topcard__flavor--bullet", ".top-card-layout__second-subline .topcard__flavor--bullet",
		},
		ExtraEmployment: []Tactic{CriteriaTactic(item, label, value, "Employment type")},
		ExtraSeniority:  []Tactic{CriteriaTactic(item, label, value, "Seniority level")},
		DescriptionSelectors: withGeneric(
			".show-more-less-html__markup",
			".description__text",
		),
		NoiseSelectors: []string{
			".show-more-less-html__button", ".similar-jobs", ".people-also-viewed", ".sign-in-modal",
			".top-card-layout__cta-container",
		},
	})
}

// Ashby reads jobs.ashbyhq.com.
func Ashby() Strategy {
	return NewStrategy(SiteProfile{
		Site:           types.SiteAshby,
		ParseTitle:     AshbyTitle,
		CompanyFromURL: true,
		TitleSelectors: []string{".ashby-job-posting-heading", "h1"},
		LocationSelectors: []string{
			".ashby-job-posting-left-pane [class*='location']",
		},
		DescriptionSelectors: withGeneric(".ashby-job-posting-description", "[class*='descriptionText']"),
		NoiseSelectors:       []string{".ashby-application-form-container"},
	})
}

// Generic reads any other site from meta tags, JSON-LD and page structure.
func Generic() Strategy {
	return NewStrategy(SiteProfile{
		Site:                 types.SiteGeneric,
		CompanyFromURL:       true,
		TitleSelectors:       []string{"h1"},
		LocationSelectors:    []string{".job-location", ".location", "[itemprop='jobLocation']"},
		EmploymentSelectors:  []string{".employment-type", "[itemprop='employmentType']"},
		DescriptionSelectors: genericDescriptionSelectors,
	})
}
