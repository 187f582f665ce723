// Package portal is the HTTP client for the JAP recruiting backend: the
// NL-to-query endpoint, the login endpoint and the GraphQL operations the
// scheduling workflow needs. It performs no retries; every operation is one
// request and one response.
package portal

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8000"
	userAgent     = "jap-cli"

	loginPath   = "/login"
	nl2gqlPath  = "/nl2gql"
	graphqlPath = "/graphql"
)

// RawResult is the untyped result payload of one conversational turn. Its
// shape depends on which backend operation executed; the client never
// mutates it.
type RawResult = map[string]any

// APIError is a backend-reported error: a response was received but carried
// an error envelope. Its message is shown to the user verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the JAP backend.
type Client struct {
	// ctx is used for http requests only
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
	UserAgent  string

	// RoleFunc supplies the caller's role for the X-User-Role header on
	// every request. The backend enforces authorization from it; the
	// client-side action gating is a UX convenience, not the security
	// boundary.
	RoleFunc func() string
}

// New creates a backend client. An empty apiURL falls back to the default
// local endpoint.
func New(ctx context.Context, logger *zap.Logger, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		ctx:    ctx,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: userAgent,
	}
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
