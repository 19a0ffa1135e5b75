package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

const (
	DefaultGitHubAPIURL     = "https://api.github.com/"
	DefaultGitHubGraphQLURL = "https://api.github.com/graphql"

	// dependencyGraphPreview enables dependencyGraphManifests on the
	// GraphQL schema.
	dependencyGraphPreview = "application/vnd.github.hawkgirl-preview+json"

	defaultGitHubTimeout = 60 * time.Second
)

// NewGitHubHTTPClient returns an HTTP client that authenticates every
// request with token. A base client carried on ctx under oauth2.HTTPClient
// is used as the underlying transport.
func NewGitHubHTTPClient(ctx context.Context, token string) (*http.Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("github token is required")
	}
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = defaultGitHubTimeout
	return client, nil
}

// acceptHeaderTransport pins the Accept header of every request.
type acceptHeaderTransport struct {
	base   http.RoundTripper
	accept string
}

func (t acceptHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", t.accept)
	return t.base.RoundTrip(clone)
}

func withAcceptHeader(client *http.Client, accept string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: acceptHeaderTransport{base: base, accept: accept},
		Timeout:   client.Timeout,
	}
}

func parseBaseURL(raw string, fallback string) (*url.URL, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = fallback
	}
	if !strings.HasSuffix(value, "/") {
		value += "/"
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid github api url %q", raw))
	}
	return parsed, nil
}

// githubError attaches an error code derived from the HTTP status the
// platform answered with.
func githubError(err error, msg string) error {
	code := errbuilder.CodeInternal
	var respErr *github.ErrorResponse
	var rateErr *github.RateLimitError
	switch {
	case errors.As(err, &rateErr):
		code = errbuilder.CodePermissionDenied
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = errbuilder.CodePermissionDenied
		case http.StatusNotFound:
			code = errbuilder.CodeNotFound
		}
	default:
		text := err.Error()
		switch {
		case strings.Contains(text, "401 Unauthorized"), strings.Contains(text, "403 Forbidden"):
			code = errbuilder.CodePermissionDenied
		case strings.Contains(text, "404 Not Found"):
			code = errbuilder.CodeNotFound
		}
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(msg).
		WithCause(err)
}
