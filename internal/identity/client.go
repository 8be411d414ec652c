package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to the hosted identity provider. The service never handles
// credentials itself; it only introspects the session tokens the frontend
// obtained from the provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// User is the identity resolved from a session token.
type User struct {
	ID          string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Verify introspects a session token and returns the user it belongs to.
// An expired or unknown token is an error, not a nil user.
func (c *Client) Verify(token string) (*User, error) {
	payload := map[string]string{"token": token}
	var user User
	if err := c.doJSON("POST", "/v1/sessions/verify", payload, &user); err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("verify session: provider returned no user id")
	}
	return &user, nil
}

// GetUser fetches a user profile by ID.
func (c *Client) GetUser(userID string) (*User, error) {
	var user User
	if err := c.doJSON("GET", "/v1/users/"+userID, nil, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (c *Client) doJSON(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
