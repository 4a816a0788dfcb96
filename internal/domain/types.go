// Package domain defines the normalized domain types for GitHub search
// activity. These types represent the core concepts independent of the
// GitHub GraphQL API structure.
package domain

import "time"

// RecordKind discriminates the two shapes a search node can take.
type RecordKind string

// Kind constants matching the GraphQL __typename values.
const (
	KindIssue       RecordKind = "Issue"
	KindPullRequest RecordKind = "PullRequest"
)

// Actor is a GitHub account reference. A nil *Actor means the account was
// deleted or anonymized.
type Actor struct {
	Login string
}

// Comment represents a comment on an Issue or PR.
type Comment struct {
	Author            *Actor // nil if the author's account was deleted
	AuthorAssociation string // e.g. "MEMBER", "CONTRIBUTOR", "NONE"
	URL               string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Record is one issue or pull request as returned by the search, decoded at
// the system boundary into a tagged variant. PR-only fields are zero for
// issues.
type Record struct {
	Kind   RecordKind
	ID     string // GitHub node ID
	Title  string
	State  string // OPEN, CLOSED, MERGED
	URL    string
	Number int

	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  time.Time // zero if still open

	Labels            []string
	AuthorAssociation string
	Author            *Actor // nil for deleted accounts

	Comments []Comment

	// Pull request variant only.
	MergedBy    *Actor
	MergeCommit string // merge commit OID
}

// Row is a Record after normalization: the author mapping reduced to a login
// string and the owning organization and repository derived from the URL.
type Row struct {
	Kind         RecordKind
	ID           string
	Title        string
	State        string
	URL          string
	Number       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     time.Time
	Labels       []string
	Author       string // empty for deleted accounts
	Organization string
	Repository   string
	Comments     int    // comment count carried into the flat view
	MergedBy     string // empty for issues and unmerged PRs
	MergeCommit  string
}

// Table is the flattened result of one search run. An empty table is a valid
// terminal state (the query matched zero items).
type Table struct {
	Rows []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
