package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

const (
	defaultAPIBase   = "https://api.github.com"
	apiVersionHeader = "2022-11-28"
	requestTimeout   = 30 * time.Second
)

// GitHubPublisher commits files to a repository through the contents
// API, one commit per file. Token may be a personal access token or an
// installation token minted from an App JWT.
type GitHubPublisher struct {
	Owner  string
	Repo   string
	Branch string
	Token  string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

type contentsResponse struct {
	SHA string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

// Publish implements Publisher. Each file is created or updated in name
// order; an existing file's blob SHA is looked up first because the API
// requires it for updates.
func (g *GitHubPublisher) Publish(ctx context.Context, files map[string]string, message string) error {
	if g.Owner == "" || g.Repo == "" {
		return fmt.Errorf("publish: owner and repo are required")
	}
	if g.Token == "" {
		return fmt.Errorf("publish: missing GitHub token")
	}
	if len(files) == 0 {
		return fmt.Errorf("publish: no files to push")
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sha, err := g.existingSHA(ctx, name)
		if err != nil {
			return err
		}
		if err := g.putFile(ctx, name, files[name], message, sha); err != nil {
			return err
		}
	}
	return nil
}

// existingSHA returns the blob SHA for a path, or "" when the file does
// not exist yet.
func (g *GitHubPublisher) existingSHA(ctx context.Context, path string) (string, error) {
	req, err := g.newRequest(ctx, http.MethodGet, g.contentsURL(path), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("publish: looking up %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var contents contentsResponse
		if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
			return "", fmt.Errorf("publish: decoding contents of %s: %w", path, err)
		}
		return contents.SHA, nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", g.apiError(resp, "looking up "+path)
	}
}

func (g *GitHubPublisher) putFile(ctx context.Context, path, content, message, sha string) error {
	body, err := json.Marshal(putContentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		Branch:  g.Branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("publish: encoding %s: %w", path, err)
	}

	req, err := g.newRequest(ctx, http.MethodPut, g.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := g.client().Do(req)
	if err != nil {
		return fmt.Errorf("publish: pushing %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return g.apiError(resp, "pushing "+path)
	}
	return nil
}

func (g *GitHubPublisher) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("publish: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	return req, nil
}

func (g *GitHubPublisher) contentsURL(path string) string {
	base := g.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", base, g.Owner, g.Repo, path)
}

func (g *GitHubPublisher) client() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: requestTimeout}
}

func (g *GitHubPublisher) apiError(resp *http.Response, what string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("publish: %s: GitHub returned %d: %s", what, resp.StatusCode, bytes.TrimSpace(body))
}
