package fitbit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"nicklife"
	"nicklife/params"
)

// TokenManager owns the validity of the Fitbit access credential. It probes
// the credential before use and refreshes it once on an unauthorized probe.
// Refreshes are single-flighted so overlapping conversations cannot race two
// refreshes into invalidating each other's refresh token.
type TokenManager struct {
	store      params.Store
	httpClient nicklife.HTTPClient
	baseURL    string
	cfg        nicklife.FitbitConfig
	group      singleflight.Group
}

func NewTokenManager(store params.Store, httpClient nicklife.HTTPClient, cfg nicklife.FitbitConfig) *TokenManager {
	return &TokenManager{
		store:      store,
		httpClient: httpClient,
		baseURL:    cfg.APIBaseURL,
		cfg:        cfg,
	}
}

// AccessToken returns an access token known to have been valid a moment ago.
// A non-401 probe failure (network error, 5xx) is propagated unchanged as a
// transient failure; it is not grounds for a refresh.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx, m.cfg.AccessTokenParam)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}

	status, err := m.probe(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token probe: %w", err)
	}

	switch {
	case status == http.StatusUnauthorized:
		slog.Info("TOKENS: Probe unauthorized, refreshing", "param", m.cfg.AccessTokenParam)
	case status >= 200 && status < 300:
		return token, nil
	default:
		return "", fmt.Errorf("token probe: unexpected status %d", status)
	}

	// Refresh at most once per invocation; concurrent callers share one
	// refresh round-trip keyed on the access-token parameter name.
	v, err, _ := m.group.Do(m.cfg.AccessTokenParam, func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// probe issues the cheap authenticated profile fetch and reports its status.
func (m *TokenManager) probe(ctx context.Context, token string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/1/user/-/profile.json", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new token pair and
// persists both before returning the new access token.
func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	refreshToken, err := m.store.Get(ctx, m.cfg.RefreshTokenParam)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	clientID, err := m.store.Get(ctx, m.cfg.ClientIDParam)
	if err != nil {
		return "", fmt.Errorf("read client id: %w", err)
	}
	clientSecret, err := m.store.Get(ctx, m.cfg.ClientSecretParam)
	if err != nil {
		return "", fmt.Errorf("read client secret: %w", err)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
	req.Header.Set("Authorization", "Basic "+encoded)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Reason: "refresh request failed", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Reason: fmt.Sprintf("refresh rejected with status %d", resp.StatusCode)}
	}

	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return "", &AuthError{Reason: "decoding refresh response", Err: err}
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return "", &AuthError{Reason: "refresh response missing tokens"}
	}

	// Persist the pair together; a half-written pair would strand the next
	// refresh, so the first failure aborts.
	if err := m.store.Put(ctx, m.cfg.AccessTokenParam, tokens.AccessToken); err != nil {
		return "", fmt.Errorf("persist access token: %w", err)
	}
	if err := m.store.Put(ctx, m.cfg.RefreshTokenParam, tokens.RefreshToken); err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}

	slog.Info("TOKENS: Refreshed credential pair", "param", m.cfg.AccessTokenParam)
	return tokens.AccessToken, nil
}
