// Package gh talks to the GitHub GraphQL API. It builds search documents,
// fetches one page of search results at a time, and decodes the nested
// response into the domain types.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/h0rv/ghact/internal/domain"
	"github.com/rs/zerolog"
)

// PageResult is one decoded page of search results.
type PageResult struct {
	TotalCount  int             // issueCount from the first page drives the page estimate
	EndCursor   string          // cursor for the next page, empty on the last page
	HasNextPage bool            // false on the final page
	Records     []domain.Record // in API order
}

// Fetcher executes search documents against the GraphQL endpoint. It is
// stateless: each Fetch is independent and the zero cursor/pagination state
// lives with the caller.
type Fetcher struct {
	httpClient *http.Client
	endpoint   string
	token      string
	log        zerolog.Logger
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithEndpoint overrides the GraphQL endpoint (used in tests).
func WithEndpoint(url string) FetcherOption {
	return func(f *Fetcher) { f.endpoint = url }
}

// WithHTTPClient overrides the HTTP client, e.g. to change the per-request
// timeout.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log zerolog.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = log }
}

// NewFetcher creates a Fetcher. An empty token means anonymous requests: the
// Authorization header is omitted and GitHub applies its unauthenticated rate
// limits.
func NewFetcher(token string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   Endpoint,
		token:      token,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// graphql response envelope. Errors may be present even on HTTP 200.
type responseEnvelope struct {
	Data *struct {
		Search *searchPayload `json:"search"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type actorNode struct {
	Login string `json:"login"`
}

// Pointer fields distinguish absent from zero-valued: a success payload
// missing any of them is malformed, not an empty result.
type searchPayload struct {
	IssueCount *int `json:"issueCount"`
	PageInfo   *struct {
		EndCursor   string `json:"endCursor"`
		HasNextPage bool   `json:"hasNextPage"`
	} `json:"pageInfo"`
	Nodes *[]searchNode `json:"nodes"`
}

type searchNode struct {
	Typename  string    `json:"__typename"`
	State     string    `json:"state"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ClosedAt  time.Time `json:"closedAt"`
	Labels    struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
	Number            int        `json:"number"`
	AuthorAssociation string     `json:"authorAssociation"`
	Author            *actorNode `json:"author"`
	MergedBy          *actorNode `json:"mergedBy"`
	MergeCommit       *struct {
		OID string `json:"oid"`
	} `json:"mergeCommit"`
	Comments struct {
		Nodes []struct {
			AuthorAssociation string     `json:"authorAssociation"`
			CreatedAt         time.Time  `json:"createdAt"`
			UpdatedAt         time.Time  `json:"updatedAt"`
			URL               string     `json:"url"`
			Author            *actorNode `json:"author"`
		} `json:"nodes"`
	} `json:"comments"`
}

// Fetch executes one search document and decodes the page. It returns a
// *TransportError when the HTTP layer fails or returns a non-2xx status, and
// a *RemoteQueryError when the response carries an application-level error
// list or lacks the expected data.search fields.
func (f *Fetcher) Fetch(ctx context.Context, document string) (*PageResult, error) {
	body, err := json.Marshal(map[string]string{"query": document})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	res, err := f.httpClient.Do(req)
	if err != nil {
		// Let context cancellation surface as-is so callers can
		// distinguish a deliberate abort from a transport failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Document: document, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Document: document, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		f.log.Debug().Int("status", res.StatusCode).Msg("graphql request rejected")
		return nil, &TransportError{Document: document, StatusCode: res.StatusCode, Body: raw}
	}

	var env responseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &RemoteQueryError{Document: document, Reason: "response is not valid JSON: " + err.Error()}
	}

	errs, ok := decodeErrorList(env.Errors)
	if !ok {
		return nil, &RemoteQueryError{Document: document, Errors: env.Errors, Reason: "errors field is not an array"}
	}
	if len(errs) > 0 {
		f.log.Debug().RawJSON("errors", env.Errors).Msg("graphql query returned errors")
		return nil, &RemoteQueryError{Document: document, Errors: env.Errors}
	}

	if env.Data == nil || env.Data.Search == nil {
		return nil, &RemoteQueryError{Document: document, Reason: "missing data.search in response"}
	}
	search := env.Data.Search
	switch {
	case search.IssueCount == nil:
		return nil, &RemoteQueryError{Document: document, Reason: "missing data.search.issueCount in response"}
	case search.PageInfo == nil:
		return nil, &RemoteQueryError{Document: document, Reason: "missing data.search.pageInfo in response"}
	case search.Nodes == nil:
		return nil, &RemoteQueryError{Document: document, Reason: "missing data.search.nodes in response"}
	}

	page := decodePage(search)
	f.log.Debug().
		Int("total", page.TotalCount).
		Int("records", len(page.Records)).
		Bool("has_next", page.HasNextPage).
		Msg("fetched search page")
	return page, nil
}

// decodeErrorList returns the entries of a raw `errors` array; nil entries
// when the field was absent, null, or empty. ok is false when a non-empty
// value cannot be parsed as an array, which callers must surface rather
// than mask as a shape problem elsewhere in the payload.
func decodeErrorList(raw json.RawMessage) (entries []json.RawMessage, ok bool) {
	if len(raw) == 0 {
		return nil, true
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func decodePage(search *searchPayload) *PageResult {
	nodes := *search.Nodes
	page := &PageResult{
		TotalCount:  *search.IssueCount,
		EndCursor:   search.PageInfo.EndCursor,
		HasNextPage: search.PageInfo.HasNextPage,
		Records:     make([]domain.Record, 0, len(nodes)),
	}

	for _, node := range nodes {
		record := domain.Record{
			Kind:              domain.KindIssue,
			ID:                node.ID,
			Title:             node.Title,
			State:             node.State,
			URL:               node.URL,
			Number:            node.Number,
			CreatedAt:         node.CreatedAt,
			UpdatedAt:         node.UpdatedAt,
			ClosedAt:          node.ClosedAt,
			AuthorAssociation: node.AuthorAssociation,
			Author:            decodeActor(node.Author),
		}

		if node.Typename == string(domain.KindPullRequest) {
			record.Kind = domain.KindPullRequest
			record.MergedBy = decodeActor(node.MergedBy)
			if node.MergeCommit != nil {
				record.MergeCommit = node.MergeCommit.OID
			}
		}

		if len(node.Labels.Nodes) > 0 {
			record.Labels = make([]string, 0, len(node.Labels.Nodes))
			for _, l := range node.Labels.Nodes {
				record.Labels = append(record.Labels, l.Name)
			}
		}

		if len(node.Comments.Nodes) > 0 {
			record.Comments = make([]domain.Comment, 0, len(node.Comments.Nodes))
			for _, c := range node.Comments.Nodes {
				record.Comments = append(record.Comments, domain.Comment{
					Author:            decodeActor(c.Author),
					AuthorAssociation: c.AuthorAssociation,
					URL:               c.URL,
					CreatedAt:         c.CreatedAt,
					UpdatedAt:         c.UpdatedAt,
				})
			}
		}

		page.Records = append(page.Records, record)
	}

	return page
}

// decodeActor maps a nullable author node to the domain type. Deleted
// accounts come back as JSON null and stay nil.
func decodeActor(a *actorNode) *domain.Actor {
	if a == nil {
		return nil
	}
	return &domain.Actor{Login: a.Login}
}
