package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nicklife"
)

// Client wraps the Fitbit Web API endpoints this app uses. Access tokens are
// passed per call; their lifecycle belongs to TokenManager.
type Client struct {
	httpClient nicklife.HTTPClient
	baseURL    string
	loc        *time.Location
	now        func() time.Time
}

// NewClient creates a Fitbit API client. loc is the fixed reference timezone
// used for date stamping and meal classification, regardless of where the
// process runs.
func NewClient(httpClient nicklife.HTTPClient, baseURL string, loc *time.Location) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		loc:        loc,
		now:        time.Now,
	}
}

// SearchFoods searches the food catalog by name. The returned slice preserves
// catalog relevance order and may be empty; a non-success status yields
// ErrCatalogUnavailable so callers can tell "no results" from "search failed".
func (c *Client) SearchFoods(ctx context.Context, accessToken, query string) ([]FoodCandidate, error) {
	endpoint := c.baseURL + "/1/foods/search.json?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("food search: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		slog.Warn("CATALOG: Search failed", "status", resp.StatusCode, "query", query)
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrCatalogUnavailable, err)
	}

	slog.Info("CATALOG: Search completed", "query", query, "results", len(sr.Foods))
	return sr.Foods, nil
}

// LogFood writes one food-log entry dated today in the log timezone, with the
// meal type classified from the current hour. Only a 201 counts as success;
// anything else comes back as a *LogWriteError carrying status and body.
func (c *Client) LogFood(ctx context.Context, accessToken string, foodID, unitID int64, amount float64) (string, error) {
	now := c.now().In(c.loc)

	q := url.Values{
		"foodId":     {strconv.FormatInt(foodID, 10)},
		"mealTypeId": {strconv.Itoa(MealTypeForHour(now.Hour()))},
		"unitId":     {strconv.FormatInt(unitID, 10)},
		"amount":     {strconv.FormatFloat(amount, 'f', -1, 64)},
		"date":       {now.Format("2006-01-02")},
	}

	endpoint := c.baseURL + "/1/user/-/foods/log.json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("food log write: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return "", &LogWriteError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	slog.Info("FOODLOG: Entry created", "food_id", foodID, "amount", amount, "date", q.Get("date"), "meal_type", q.Get("mealTypeId"))
	return string(body), nil
}

// Today returns today's date string in the log timezone.
func (c *Client) Today() string {
	return c.now().In(c.loc).Format("2006-01-02")
}

func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}

// FetchProfile fetches the user profile (age, display name).
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	var p Profile
	err := c.getJSON(ctx, accessToken, "/1/user/-/profile.json", &p)
	return p, err
}

// FetchWeightToday fetches today's body-weight log.
func (c *Client) FetchWeightToday(ctx context.Context, accessToken string) (WeightLog, error) {
	var w WeightLog
	err := c.getJSON(ctx, accessToken, "/1/user/-/body/log/weight/date/"+c.Today()+".json", &w)
	return w, err
}

// FetchFoodsToday fetches today's food log.
func (c *Client) FetchFoodsToday(ctx context.Context, accessToken string) (FoodLog, error) {
	var f FoodLog
	err := c.getJSON(ctx, accessToken, "/1/user/-/foods/log/date/"+c.Today()+".json", &f)
	return f, err
}

// FetchActivitiesToday fetches today's activity summary.
func (c *Client) FetchActivitiesToday(ctx context.Context, accessToken string) (ActivitySummary, error) {
	var a ActivitySummary
	err := c.getJSON(ctx, accessToken, "/1/user/-/activities/date/"+c.Today()+".json", &a)
	return a, err
}

// FetchSleepToday fetches today's sleep log.
func (c *Client) FetchSleepToday(ctx context.Context, accessToken string) (SleepLog, error) {
	var s SleepLog
	err := c.getJSON(ctx, accessToken, "/1/user/-/sleep/date/"+c.Today()+".json", &s)
	return s, err
}
