package gh

import (
	"context"
	"fmt"
	"time"

	"github.com/machinebox/graphql"
)

// Client is a thin GitHub GraphQL client for the small fixed queries that
// sit outside the search/pagination path, such as the viewer preflight.
type Client struct {
	gql   *graphql.Client
	token string
}

// NewClient creates a client for the given token.
func NewClient(token string) *Client {
	return &Client{
		gql:   graphql.NewClient(Endpoint),
		token: token,
	}
}

// ViewerInfo describes the authenticated user and their remaining API budget.
type ViewerInfo struct {
	Login     string
	RateLimit int
	Remaining int
	ResetAt   time.Time
}

// Viewer returns the authenticated user's login and current rate limit
// state. It requires a token; anonymous callers should skip the preflight.
func (c *Client) Viewer(ctx context.Context) (*ViewerInfo, error) {
	req := graphql.NewRequest(`
		query {
			viewer {
				login
			}
			rateLimit {
				limit
				remaining
				resetAt
			}
		}
	`)
	req.Header.Set("Authorization", "Bearer "+c.token)

	var resp struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
		RateLimit struct {
			Limit     int       `json:"limit"`
			Remaining int       `json:"remaining"`
			ResetAt   time.Time `json:"resetAt"`
		} `json:"rateLimit"`
	}

	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	return &ViewerInfo{
		Login:     resp.Viewer.Login,
		RateLimit: resp.RateLimit.Limit,
		Remaining: resp.RateLimit.Remaining,
		ResetAt:   resp.RateLimit.ResetAt,
	}, nil
}
