package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the verified identity assertion extracted from a provider.
type Profile struct {
	Provider      string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// Provider drives one OAuth authorization-code flow and turns the resulting
// access token into a Profile.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Registry maps provider names to configured providers.
type Registry map[string]Provider

// Lookup returns the provider for name.
func (r Registry) Lookup(name string) (Provider, error) {
	p, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider %q", name)
	}
	return p, nil
}

type githubProvider struct {
	cfg *oauth2.Config
}

// NewGitHub configures the GitHub provider.
func NewGitHub(clientID, clientSecret, baseURL string) Provider {
	return &githubProvider{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/auth/github/callback",
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     github.Endpoint,
	}}
}

func (p *githubProvider) Name() string { return "github" }

func (p *githubProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *githubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.cfg.Exchange(ctx, code)
}

type githubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *githubProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.cfg.Client(ctx, token)

	var user githubUser
	if err := getJSON(ctx, client, "https://api.github.com/user", &user); err != nil {
		return nil, fmt.Errorf("github user: %w", err)
	}

	profile := &Profile{
		Provider:  p.Name(),
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
	if profile.Name == "" {
		profile.Name = user.Login
	}

	// The profile email is empty when the user keeps it private; the emails
	// endpoint still lists the verified primary address.
	if profile.Email == "" {
		var emails []githubEmail
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, fmt.Errorf("github emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				profile.Email = e.Email
				break
			}
		}
	}

	profile.EmailVerified = profile.Email != ""
	return profile, nil
}

type googleProvider struct {
	cfg *oauth2.Config
}

// NewGoogle configures the Google provider.
func NewGoogle(clientID, clientSecret, baseURL string) Provider {
	return &googleProvider{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}}
}

func (p *googleProvider) Name() string { return "google" }

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.cfg.Exchange(ctx, code)
}

type googleUser struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (p *googleProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.cfg.Client(ctx, token)

	var user googleUser
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &user); err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}

	return &Profile{
		Provider:      p.Name(),
		Email:         user.Email,
		Name:          user.Name,
		AvatarURL:     user.Picture,
		EmailVerified: user.VerifiedEmail,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
