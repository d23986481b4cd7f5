// Package oidc handles federated login against external identity
// providers. Providers are registered at startup from configuration;
// ones with missing credentials are simply absent from the registry.
package oidc

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
)

var ErrUnknownProvider = errors.New("oidc: unknown provider")

// UserInfo is the normalized identity asserted by a provider after a
// successful code exchange.
type UserInfo struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// ProviderConfig carries the credentials and callback for one provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Enabled reports whether the provider has usable credentials.
func (c ProviderConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type provider struct {
	config *oauth2.Config
	fetch  func(ctx context.Context, client httpDoer) (UserInfo, error)
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]provider
}

// Config lists the supported providers. Any of them may be left blank.
type Config struct {
	Google    ProviderConfig
	GitHub    ProviderConfig
	Microsoft ProviderConfig
}

// NewRegistry builds a registry from configuration, skipping providers
// without credentials.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{providers: make(map[string]provider)}

	if cfg.Google.Enabled() {
		r.providers["google"] = provider{
			config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  cfg.Google.CallbackURL,
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			fetch: fetchGoogleUser,
		}
	}

	if cfg.GitHub.Enabled() {
		r.providers["github"] = provider{
			config: &oauth2.Config{
				ClientID:     cfg.GitHub.ClientID,
				ClientSecret: cfg.GitHub.ClientSecret,
				RedirectURL:  cfg.GitHub.CallbackURL,
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
			fetch: fetchGitHubUser,
		}
	}

	if cfg.Microsoft.Enabled() {
		r.providers["microsoft"] = provider{
			config: &oauth2.Config{
				ClientID:     cfg.Microsoft.ClientID,
				ClientSecret: cfg.Microsoft.ClientSecret,
				RedirectURL:  cfg.Microsoft.CallbackURL,
				Scopes:       []string{"openid", "email", "profile", "User.Read"},
				Endpoint:     microsoft.AzureADEndpoint("common"),
			},
			fetch: fetchMicrosoftUser,
		}
	}

	return r
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Has reports whether the named provider is configured.
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

// AuthCodeURL builds the provider's consent page URL for the given
// anti-forgery state.
func (r *Registry) AuthCodeURL(name, state string) (string, error) {
	p, ok := r.providers[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// Exchange trades the authorization code for a token and fetches the
// provider's view of the user.
func (r *Registry) Exchange(ctx context.Context, name, code string) (UserInfo, error) {
	p, ok := r.providers[name]
	if !ok {
		return UserInfo{}, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return UserInfo{}, fmt.Errorf("oidc: code exchange failed: %w", err)
	}

	info, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		return UserInfo{}, err
	}
	if info.Email == "" {
		return UserInfo{}, errors.New("oidc: provider returned no email")
	}
	return info, nil
}
