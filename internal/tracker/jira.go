package tracker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wfdeller/feedback/internal/model"
)

// JiraClient talks to the Jira REST API. Issues land in a single configured
// project; status updates become comments on the issue.
type JiraClient struct {
	baseURL    string
	email      string
	apiToken   string
	projectKey string
	httpClient *http.Client
}

func NewJiraClient(baseURL, email, apiToken, projectKey string) *JiraClient {
	return &JiraClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		projectKey: projectKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Project     projectRef `json:"project"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	IssueType   typeRef    `json:"issuetype"`
	Priority    *nameRef   `json:"priority,omitempty"`
}

type projectRef struct {
	Key string `json:"key"`
}

type typeRef struct {
	Name string `json:"name"`
}

type nameRef struct {
	Name string `json:"name"`
}

type createIssueResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func (c *JiraClient) CreateIssue(ctx context.Context, req *model.FeedbackRequest) (string, error) {
	description := req.Description
	if req.UserName != "" {
		description = fmt.Sprintf("%s\n\nSubmitted by %s (%s) for application %s",
			req.Description, req.UserName, req.UserEmail, req.ApplicationID)
	}

	payload := createIssueRequest{
		Fields: issueFields{
			Project:     projectRef{Key: c.projectKey},
			Summary:     req.Title,
			Description: description,
			IssueType:   typeRef{Name: "Task"},
			Priority:    &nameRef{Name: mapPriority(req.Priority)},
		},
	}

	var resp createIssueResponse
	if err := c.post(ctx, "/rest/api/2/issue", payload, &resp); err != nil {
		return "", fmt.Errorf("creating jira issue: %w", err)
	}
	return resp.Key, nil
}

func (c *JiraClient) UpdateIssue(ctx context.Context, ticketID string, entry model.StatusEntry) error {
	payload := map[string]string{
		"body": fmt.Sprintf("%s (%s)", entry.Description, entry.StatusDate.Format(time.RFC3339)),
	}

	path := fmt.Sprintf("/rest/api/2/issue/%s/comment", ticketID)
	if err := c.post(ctx, path, payload, nil); err != nil {
		return fmt.Errorf("updating jira issue %s: %w", ticketID, err)
	}
	return nil
}

func (c *JiraClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *JiraClient) setAuthHeader(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.apiToken))
	req.Header.Set("Authorization", "Basic "+auth)
}

func mapPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}
