package fetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GitHub usernames: alphanumeric with single interior hyphens, 39 chars max.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:-?[a-zA-Z0-9]){0,38}$`)

// GitHubProfileURL builds the public profile URL for a username.
func GitHubProfileURL(username string) (string, error) {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("invalid GitHub username %q", username)
	}
	return "https://github.com/" + username, nil
}

// IsGitHubURL reports whether a URL points at github.com.
func IsGitHubURL(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	return host == "github.com" || strings.HasSuffix(host, ".github.com")
}

// GitHubProfileSelectors returns content selectors for a profile page,
// most specific first.
func GitHubProfileSelectors() []string {
	return []string{
		".js-profile-editable-area",
		"[itemtype='http://schema.org/Person']",
		"main",
	}
}

// GitHubProfileNoiseSelectors returns profile-page elements that carry
// no signal for optimization.
func GitHubProfileNoiseSelectors() []string {
	return []string{
		".js-yearly-contributions",
		".footer",
		".Header",
		"[data-login-modal]",
	}
}
