package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// ParsedAtLayout formats JobDetails.ParsedAt
const ParsedAtLayout = "2006-01-02 15:04:05"

// ParseJob downloads a posting and extracts its job details. When UseBrowser is set
// and the plain HTTP page yields too little description text, the page is rendered
// in headless Chrome and parsed again.
func ParseJob(ctx context.Context, url string, opts *Options) (*types.JobDetails, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	result, err := URL(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	details, err := ParseJobHTML(result.HTML, url, time.Now())
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to parse page", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(details.Description) {
		opts.Logger.Info().
			Str("url", url).
			Int("chars", len(details.Description)).
			Msg("description too short, retrying with browser")

		rendered, browserErr := WithBrowser(ctx, url, opts)
		if browserErr != nil {
			opts.Logger.Warn().Err(browserErr).Str("url", url).Msg("browser fallback failed, keeping HTTP result")
			return details, nil
		}
		if reparsed, parseErr := ParseJobHTML(rendered, url, time.Now()); parseErr == nil {
			return reparsed, nil
		}
	}

	return details, nil
}

// ParseJobHTML extracts job details from a posting's HTML. Fields the page does
// not expose get placeholder values.
func ParseJobHTML(html, url string, parsedAt time.Time) (*types.JobDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(url)
	doc.Find(commonNoise).Remove()
	doc.Find(strings.Join(PlatformNoiseSelectors(platform), ", ")).Remove()

	selectors := SelectorsFor(platform)
	description := firstText(doc, selectors.Description, cleanWhitespace)

	return &types.JobDetails{
		URL:             url,
		Title:           orDefault(firstText(doc, selectors.Title, inlineText), types.UnknownTitle),
		Company:         orDefault(firstText(doc, selectors.Company, inlineText), types.UnknownCompany),
		Location:        orDefault(firstText(doc, selectors.Location, inlineText), types.UnknownLocation),
		Description:     description,
		Requirements:    ExtractRequirements(description),
		Skills:          ExtractSkills(description),
		ExperienceLevel: ExtractExperienceLevel(description),
		JobType:         ExtractJobType(description),
		SalaryRange:     ExtractSalaryRange(description),
		ParsedAt:        parsedAt.Format(ParsedAtLayout),
	}, nil
}

// firstText returns the text of the first selector that matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string, clean func(string) string) string {
	for _, selector := range selectors {
		var text string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = clean(s.Text())
			if text == "" {
				// img alt is the only text some logos carry
				text = strings.TrimSpace(s.AttrOr("alt", ""))
			}
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
