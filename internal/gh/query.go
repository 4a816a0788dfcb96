package gh

import (
	"fmt"
	"strings"
)

// Endpoint is the GitHub GraphQL API endpoint.
const Endpoint = "https://api.github.com/graphql"

// MaxPageSize is the largest page the search connection accepts.
const MaxPageSize = 100

// baseFields are the fields requested for both Issue and PullRequest nodes.
const baseFields = `
        __typename
        state
        id
        title
        url
        createdAt
        updatedAt
        closedAt
        labels(first: 10) {
          nodes {
            name
          }
        }
        number
        authorAssociation
        author {
          login
        }`

// commentsFields selects the most recent comments on each node.
const commentsFields = `
        comments(last: 100) {
          nodes {
            authorAssociation
            createdAt
            updatedAt
            url
            author {
              login
            }
          }
        }`

// BuildSearchQuery renders the complete GraphQL search document for one page.
// The search string is embedded in the query filter after escaping, pageSize
// becomes the connection's `first` argument, and cursor (when non-empty) is
// passed verbatim as `after`. The same inputs always produce the same
// document.
func BuildSearchQuery(search string, pageSize int, cursor string) string {
	args := []string{
		fmt.Sprintf("first: %d", pageSize),
		fmt.Sprintf(`query: "%s"`, escapeSearch(search)),
		"type: ISSUE",
	}
	if cursor != "" {
		args = append(args, fmt.Sprintf(`after: "%s"`, cursor))
	}

	return fmt.Sprintf(`{
  search(%s) {
    issueCount
    pageInfo {
      endCursor
      hasNextPage
    }
    nodes {
      ... on PullRequest {%s
        mergedBy {
          login
        }
        mergeCommit {
          oid
        }%s
      }
      ... on Issue {%s%s
      }
    }
  }
}`, strings.Join(args, ", "), baseFields, commentsFields, baseFields, commentsFields)
}

// escapeSearch escapes backslashes and double quotes so the user's search
// string cannot break out of the quoted query argument.
func escapeSearch(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
