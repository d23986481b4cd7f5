package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func fetchJSON(ctx context.Context, client httpDoer, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("oidc: userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oidc: userinfo request returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGoogleUser(ctx context.Context, client httpDoer) (UserInfo, error) {
	var payload struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := fetchJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &payload); err != nil {
		return UserInfo{}, err
	}
	return UserInfo{
		Subject: payload.ID,
		Email:   payload.Email,
		Name:    payload.Name,
		Picture: payload.Picture,
	}, nil
}

func fetchGitHubUser(ctx context.Context, client httpDoer) (UserInfo, error) {
	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := fetchJSON(ctx, client, "https://api.github.com/user", &payload); err != nil {
		return UserInfo{}, err
	}

	// The profile email is often hidden; fall back to the primary
	// verified address from the emails endpoint.
	if payload.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := fetchJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return UserInfo{}, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				payload.Email = e.Email
				break
			}
		}
	}

	name := payload.Name
	if name == "" {
		name = payload.Login
	}
	return UserInfo{
		Subject: fmt.Sprintf("%d", payload.ID),
		Email:   payload.Email,
		Name:    name,
		Picture: payload.AvatarURL,
	}, nil
}

func fetchMicrosoftUser(ctx context.Context, client httpDoer) (UserInfo, error) {
	var payload struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := fetchJSON(ctx, client, "https://graph.microsoft.com/v1.0/me", &payload); err != nil {
		return UserInfo{}, err
	}

	email := payload.Mail
	if email == "" {
		email = payload.UserPrincipalName
	}
	return UserInfo{
		Subject: payload.ID,
		Email:   email,
		Name:    payload.DisplayName,
	}, nil
}
