// Package exercisedb fetches exercise metadata from the external exercise
// database. The provider is a black box: the rest of the application only
// sees [workout.Exercise] values and plain-text descriptions.
package exercisedb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/lifeonlars/styrkur/internal/workout"
)

const (
	defaultTimeout = 10 * time.Second

	// maxConcurrentFetches bounds parallel detail requests so a large
	// workout doesn't stampede the provider.
	maxConcurrentFetches = 4
)

// Client talks to the exercise database over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Filter narrows an exercise listing. Zero values leave the dimension
// unconstrained.
type Filter struct {
	Term      string
	MuscleID  int
	Equipment string
	Limit     int
}

// Detail is one exercise with its description sanitized to plain text. The
// provider serves descriptions as HTML fragments.
type Detail struct {
	Exercise    workout.Exercise `json:"exercise"`
	Description string           `json:"description"`
}

// exercisePayload is the provider's wire shape for one exercise.
type exercisePayload struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Muscles          []int  `json:"muscles"`
	MusclesSecondary []int  `json:"muscles_secondary"`
	Equipment        string `json:"equipment"`
	Category         string `json:"category"`
}

func (p exercisePayload) toExercise() workout.Exercise {
	return workout.Exercise{
		ID:                 strconv.Itoa(p.ID),
		Name:               p.Name,
		Equipment:          p.Equipment,
		Category:           p.Category,
		PrimaryMuscleIDs:   p.Muscles,
		SecondaryMuscleIDs: p.MusclesSecondary,
	}
}

// FetchExercises lists exercises matching the filter.
func (c *Client) FetchExercises(ctx context.Context, filter Filter) ([]workout.Exercise, error) {
	query := url.Values{}
	if filter.Term != "" {
		query.Set("term", filter.Term)
	}
	if filter.MuscleID != 0 {
		query.Set("muscle", strconv.Itoa(filter.MuscleID))
	}
	if filter.Equipment != "" {
		query.Set("equipment", filter.Equipment)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	endpoint := c.baseURL + "/exercises"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var listing struct {
		Results []exercisePayload `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &listing); err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}

	exercises := make([]workout.Exercise, 0, len(listing.Results))
	for _, payload := range listing.Results {
		exercises = append(exercises, payload.toExercise())
	}
	return exercises, nil
}

// FetchExerciseInfo fetches one exercise with its description.
func (c *Client) FetchExerciseInfo(ctx context.Context, id string) (Detail, error) {
	var payload exercisePayload
	if err := c.getJSON(ctx, c.baseURL+"/exercises/"+url.PathEscape(id), &payload); err != nil {
		return Detail{}, fmt.Errorf("fetch exercise info %s: %w", id, err)
	}

	description, err := htmlToText(payload.Description)
	if err != nil {
		// A broken description fragment shouldn't hide the exercise.
		c.logger.LogAttrs(ctx, slog.LevelWarn, "failed to sanitize exercise description",
			slog.String("exercise_id", id),
			slog.Any("error", err))
		description = ""
	}

	return Detail{
		Exercise:    payload.toExercise(),
		Description: description,
	}, nil
}

// FetchExerciseDetails fetches several exercises concurrently, preserving the
// order of ids. One failed fetch fails the whole call.
func (c *Client) FetchExerciseDetails(ctx context.Context, ids []string) ([]Detail, error) {
	details := make([]Detail, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		group.Go(func() error {
			detail, err := c.FetchExerciseInfo(groupCtx, id)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("fetch exercise details: %w", err)
	}
	return details, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// htmlToText flattens a provider HTML fragment into whitespace-normalized
// plain text.
func htmlToText(fragment string) (string, error) {
	if fragment == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse description fragment: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
