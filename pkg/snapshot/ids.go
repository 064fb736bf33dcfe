package snapshot

import "strings"

const (
	canonicalBaseURL = "https://skills.sh"
	githubBaseURL    = "https://github.com"
)

// CompoundID joins the three identity parts into the public id.
func CompoundID(owner, repo, skillID string) string {
	return owner + "/" + repo + "/" + skillID
}

// SplitSource splits a compact-layout "owner/repo" source string on the
// first slash. A source without a slash yields an empty repo.
func SplitSource(source string) (owner, repo string) {
	owner, repo, _ = strings.Cut(source, "/")
	return owner, repo
}

// CanonicalURL derives the public skill page URL.
func CanonicalURL(owner, repo, skillID string) string {
	return canonicalBaseURL + "/" + owner + "/" + repo + "/" + skillID
}

// GitHubURL derives the source repository URL.
func GitHubURL(owner, repo string) string {
	return githubBaseURL + "/" + owner + "/" + repo
}
