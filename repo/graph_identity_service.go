package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultGraphURL = "https://graph.facebook.com"

// GraphProfileResponse represents the response from a Graph API node lookup
type GraphProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GraphIdentityService resolves Messenger sender ids to profile names
type GraphIdentityService struct {
	AccessToken string
	BaseURL     string
	client      *http.Client
}

// NewGraphIdentityService creates a new Graph identity service
func NewGraphIdentityService(accessToken, baseURL string, client *http.Client) *GraphIdentityService {
	if baseURL == "" {
		baseURL = DefaultGraphURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GraphIdentityService{
		AccessToken: accessToken,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		client:      client,
	}
}

// ResolveName looks up the display name of a Messenger sender
func (s *GraphIdentityService) ResolveName(ctx context.Context, senderID string) (string, error) {
	query := url.Values{}
	query.Set("fields", "name")
	query.Set("access_token", s.AccessToken)
	profileURL := fmt.Sprintf("%s/%s?%s", s.BaseURL, url.PathEscape(senderID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return "", fmt.Errorf("error building profile request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error getting profile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	var profile GraphProfileResponse
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if profile.Error != nil {
		return "", fmt.Errorf("graph api error %d: %s", profile.Error.Code, profile.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("graph api returned status %d for sender %s", resp.StatusCode, senderID)
	}
	if profile.Name == "" {
		return "", fmt.Errorf("couldn't retrieve name for sender %s", senderID)
	}

	return profile.Name, nil
}
