package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	PlatformLinkedIn   Platform = "linkedin"
	PlatformIndeed     Platform = "indeed"
	PlatformGlassdoor  Platform = "glassdoor"
	PlatformMonster    Platform = "monster"
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	// PlatformGeneric is any unrecognized site
	PlatformGeneric Platform = "generic"
)

// hostPlatforms is checked in order against the lowercased host
var hostPlatforms = []struct {
	fragment string
	platform Platform
}{
	{"linkedin.com", PlatformLinkedIn},
	{"indeed.com", PlatformIndeed},
	{"glassdoor.com", PlatformGlassdoor},
	{"monster.com", PlatformMonster},
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformGeneric
	}

	host := strings.ToLower(parsed.Hostname())
	for _, hp := range hostPlatforms {
		if strings.Contains(host, hp.fragment) {
			return hp.platform
		}
	}
	return PlatformGeneric
}

// FieldSelectors lists, per job field, the CSS selectors tried in order.
type FieldSelectors struct {
	Title       []string
	Company     []string
	Location    []string
	Description []string
}

var genericSelectors = FieldSelectors{
	Title:       []string{"h1", ".title", "[class*='title']"},
	Company:     []string{".company", "[class*='company']"},
	Location:    []string{".location", "[class*='location']"},
	Description: []string{".description", "[class*='description']", "body"},
}

var platformSelectors = map[Platform]FieldSelectors{
	PlatformLinkedIn: {
		Title: []string{
			"h1.job-details-jobs-unified-top-card__job-title",
			".job-details-jobs-unified-top-card__job-title",
			"h1[data-test-id='job-details-jobs-unified-top-card__job-title']",
			".top-card-layout__title",
		},
		Company: []string{
			".job-details-jobs-unified-top-card__company-name",
			"[data-test-id='job-details-jobs-unified-top-card__company-name']",
			".topcard__org-name-link",
		},
		Location: []string{
			".job-details-jobs-unified-top-card__bullet",
			"[data-test-id='job-details-jobs-unified-top-card__bullet']",
			".topcard__flavor--bullet",
		},
		Description: []string{
			".job-details-jobs-unified-top-card__job-description",
			".show-more-less-html__markup",
			"[data-test-id='job-details-jobs-unified-top-card__job-description']",
		},
	},
	PlatformIndeed: {
		Title: []string{
			"h1[data-testid='jobsearch-JobInfoHeader-title']",
			".jobsearch-JobInfoHeader-title",
			"h1",
		},
		Company: []string{
			"[data-testid='jobsearch-JobInfoHeader-companyName']",
			".jobsearch-JobInfoHeader-companyName",
		},
		Location: []string{
			"[data-testid='jobsearch-JobInfoHeader-locationText']",
			".jobsearch-JobInfoHeader-locationText",
		},
		Description: []string{"#jobDescriptionText", ".jobsearch-jobDescriptionText"},
	},
	PlatformGlassdoor: {
		Title:       []string{".job-title", "h1", "[data-test='job-title']"},
		Company:     []string{".employer-name", "[data-test='employer-name']"},
		Location:    []string{".location", "[data-test='location']"},
		Description: []string{".jobDescriptionContent", ".desc"},
	},
	PlatformMonster: {
		Title:       []string{".job-title", "h1", "[data-testid='job-title']"},
		Company:     []string{".company-name", "[data-testid='company-name']"},
		Location:    []string{".location", "[data-testid='location']"},
		Description: []string{".job-description", ".description"},
	},
	PlatformGreenhouse: {
		Title:       []string{".app-title", "h1.section-header", "h1"},
		Company:     []string{".company-name", "[class*='company']"},
		Location:    []string{".location", ".job__location"},
		Description: []string{".job__description.body", ".job__description", "#content"},
	},
	PlatformLever: {
		Title:       []string{".posting-headline h2", "h2", "h1"},
		Company:     []string{".main-header-logo img[alt]", "[class*='company']"},
		Location:    []string{".posting-categories .location", ".sort-by-time.posting-category"},
		Description: []string{".posting-description", ".section-wrapper.page-full-width", ".content"},
	},
	PlatformWorkday: {
		Title:       []string{"[data-automation-id='jobPostingHeader']", "h1", "h2"},
		Company:     []string{"[data-automation-id='company']", "[class*='company']"},
		Location:    []string{"[data-automation-id='locations']", "[class*='location']"},
		Description: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
	},
}

// SelectorsFor returns the field selectors of a platform. Site-specific
// selectors are followed by the generic ones.
func SelectorsFor(platform Platform) FieldSelectors {
	specific, ok := platformSelectors[platform]
	if !ok {
		return genericSelectors
	}
	return FieldSelectors{
		Title:       concat(specific.Title, genericSelectors.Title),
		Company:     concat(specific.Company, genericSelectors.Company),
		Location:    concat(specific.Location, genericSelectors.Location),
		Description: concat(specific.Description, genericSelectors.Description),
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}


// PlatformNoiseSelectors returns elements removed before reading a platform's page.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".eeo-statement",
		".eeo-section",
		".legal-disclosure",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common, ".jobs-apply-button", ".similar-jobs", ".jobs-premium-upsell")
	case PlatformIndeed:
		return append(common, "#jobsearch-ViewJobButtons-container", ".jobsearch-RelatedLinks")
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".WDAF")
	default:
		return common
	}
}
