package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// Provider abstracts the OAuth provider so the login flow can be exercised
// in tests without GitHub.
type Provider interface {
	// AuthCodeURL returns the provider authorization URL carrying state.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for an access token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchIdentity loads the authenticated user's profile.
	FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error)
}

// GitHubProvider implements Provider against the real GitHub endpoints.
type GitHubProvider struct {
	oauth      *oauth2.Config
	profileURL string
	client     *http.Client
}

// NewGitHubProvider builds a provider from the configured OAuth application
// credentials. The read:user scope is enough to fetch the public profile.
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
		profileURL: "https://api.github.com/user",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthCodeURL returns the GitHub authorize URL for the given CSRF state.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	return p.oauth.Exchange(ctx, code)
}

// FetchIdentity retrieves the GitHub profile of the token's user. The
// response is decoded into Identity and otherwise kept as delivered.
func (p *GitHubProvider) FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	token.SetAuthHeader(req)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("github profile request failed: %s: %s", res.Status, body)
	}

	var id Identity
	if err := json.NewDecoder(res.Body).Decode(&id); err != nil {
		return nil, err
	}
	if id.Login == "" {
		return nil, fmt.Errorf("github profile response missing login")
	}
	return &id, nil
}
