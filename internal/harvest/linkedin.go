package harvest

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/fetch"
	"github.com/jonathan/careerconnect/internal/types"
)

// DefaultLinkedInBaseURL is the public guest endpoint that serves job
// search results as server-rendered HTML fragments.
const DefaultLinkedInBaseURL = "https://www.linkedin.com"

const linkedInSearchPath = "/jobs-guest/jobs/api/seeMoreJobPostings/search"

// LinkedIn harvests listings from the LinkedIn guest jobs API.
type LinkedIn struct {
	baseURL    string
	opts       *fetch.Options
	useBrowser bool
	log        *zap.Logger
}

// LinkedInOption customizes a LinkedIn harvester.
type LinkedInOption func(*LinkedIn)

// WithBaseURL overrides the board base URL. Used by tests.
func WithBaseURL(base string) LinkedInOption {
	return func(h *LinkedIn) {
		h.baseURL = strings.TrimRight(base, "/")
	}
}

// WithBrowserFallback enables headless browser rendering when the guest
// endpoint returns markup too short to contain listings.
func WithBrowserFallback() LinkedInOption {
	return func(h *LinkedIn) {
		h.useBrowser = true
	}
}

// NewLinkedIn creates a LinkedIn harvester.
func NewLinkedIn(log *zap.Logger, opts ...LinkedInOption) *LinkedIn {
	h := &LinkedIn{
		baseURL: DefaultLinkedInBaseURL,
		opts:    fetch.DefaultOptions(),
		log:     log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *LinkedIn) Name() string {
	return "LinkedIn"
}

// Search fetches the guest search page for a keyword and parses the job
// cards out of it. The keyword becomes the Category of every listing it
// surfaces so downstream scoring can relate the job back to the profile
// term that found it.
func (h *LinkedIn) Search(ctx context.Context, keyword, location string) ([]types.JobRecord, error) {
	searchURL := h.searchURL(keyword, location)

	result, err := fetch.URL(ctx, searchURL, h.opts)
	if err != nil {
		return nil, &Error{Provider: h.Name(), Keyword: keyword, Cause: err}
	}

	html := result.Body
	if h.useBrowser && fetch.ShouldUseBrowser(html) {
		h.log.Debug("guest markup too short, rendering with browser",
			zap.String("keyword", keyword))
		html, err = fetch.WithBrowser(ctx, searchURL, h.opts.Timeout)
		if err != nil {
			return nil, &Error{Provider: h.Name(), Keyword: keyword, Cause: err}
		}
	}

	jobs, err := h.parse(html, keyword)
	if err != nil {
		return nil, &Error{Provider: h.Name(), Keyword: keyword, Cause: err}
	}
	return jobs, nil
}

func (h *LinkedIn) searchURL(keyword, location string) string {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("location", location)
	params.Set("start", "0")
	return h.baseURL + linkedInSearchPath + "?" + params.Encode()
}

func (h *LinkedIn) parse(html, keyword string) ([]types.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var jobs []types.JobRecord
	doc.Find(".job-search-card").Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(".base-search-card__title").Text())
		company := strings.TrimSpace(card.Find(".base-search-card__subtitle").Text())
		if title == "" || company == "" {
			return
		}

		where := strings.TrimSpace(card.Find(".job-search-card__location").Text())
		link, _ := card.Find(".base-card__full-link").Attr("href")
		postedAt, _ := card.Find("time").Attr("datetime")

		jobs = append(jobs, types.ExternalJob{
			ListingID:   listingID(card, i),
			RoleTitle:   title,
			CompanyName: company,
			Keyword:     keyword,
			Where:       where,
			ListingURL:  link,
			Provider:    h.Name(),
			PostedAt:    postedAt,
		})
	})
	return jobs, nil
}

// listingID extracts the numeric ID from the card's entity URN
// ("urn:li:jobPosting:12345" -> "12345"), falling back to a positional
// synthetic ID when the attribute is missing.
func listingID(card *goquery.Selection, index int) string {
	if urn, ok := card.Attr("data-entity-urn"); ok && urn != "" {
		parts := strings.Split(urn, ":")
		if id := parts[len(parts)-1]; id != "" {
			return id
		}
	}
	return fmt.Sprintf("scraped-%d", index)
}
