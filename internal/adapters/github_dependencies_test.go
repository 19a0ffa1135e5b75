package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"codescan-report/internal/types"
)

const dependencyGraphResponse = `{
  "data": {
    "repository": {
      "licenseInfo": {"name": "Apache License 2.0"},
      "dependencyGraphManifests": {
        "nodes": [
          {
            "filename": "package-lock.json",
            "dependencies": {
              "nodes": [
                {"packageName": "left-pad", "packageManager": "NPM", "requirements": "= 1.3.0", "repository": {"licenseInfo": {"name": "MIT"}}},
                {"packageName": "lodash", "packageManager": "NPM", "requirements": "= 4.17.21", "repository": {"licenseInfo": {"name": "MIT"}}},
                {"packageName": "mystery", "packageManager": "NPM", "requirements": "= 0.0.1", "repository": {"licenseInfo": null}},
                {"packageName": "orphan", "packageManager": "NPM", "requirements": "= 2.0.0", "repository": null},
                null
              ]
            }
          },
          null
        ]
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func TestGitHubDependencyAdapterFlattensManifests(t *testing.T) {
	type capturedRequest struct {
		path   string
		accept string
		body   graphqlRequest
		err    error
	}
	requests := make(chan capturedRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured := capturedRequest{path: r.URL.Path, accept: r.Header.Get("Accept")}
		captured.err = json.NewDecoder(r.Body).Decode(&captured.body)
		requests <- captured
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, dependencyGraphResponse)
	}))
	defer server.Close()

	adapter, err := NewGitHubDependencyAdapter(server.Client(), server.URL+"/graphql")
	require.NoError(t, err)
	graph, err := adapter.ListDependencies(context.Background(), types.Repository{Owner: "acme", Name: "widgets"})
	require.NoError(t, err)

	want := types.DependencyGraph{
		License: "Apache License 2.0",
		Dependencies: []types.DependencyRecord{
			{Manifest: "package-lock.json", PackageName: "left-pad", PackageManager: "NPM", Requirements: "= 1.3.0", License: "MIT"},
			{Manifest: "package-lock.json", PackageName: "lodash", PackageManager: "NPM", Requirements: "= 4.17.21", License: "MIT"},
			{Manifest: "package-lock.json", PackageName: "mystery", PackageManager: "NPM", Requirements: "= 0.0.1", License: ""},
			{Manifest: "package-lock.json", PackageName: "orphan", PackageManager: "NPM", Requirements: "= 2.0.0", License: ""},
			{Manifest: "package-lock.json", License: ""},
		},
	}
	if diff := cmp.Diff(want, graph); diff != "" {
		t.Fatalf("unexpected dependency graph (-want +got):\n%s", diff)
	}
	captured := <-requests
	require.NoError(t, captured.err)
	require.Equal(t, "/graphql", captured.path)
	require.Equal(t, dependencyGraphPreview, captured.accept)
	require.True(t, strings.Contains(captured.body.Query, "dependencyGraphManifests(first: $manifests)"), captured.body.Query)
	require.Equal(t, "acme", captured.body.Variables["owner"])
	require.Equal(t, "widgets", captured.body.Variables["name"])
}

func TestGitHubDependencyAdapterWarnsOnTruncatedConnections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"repository": {"licenseInfo": null, "dependencyGraphManifests": {
  "pageInfo": {"hasNextPage": true},
  "nodes": [{"filename": "go.mod", "dependencies": {
    "pageInfo": {"hasNextPage": true},
    "nodes": [{"packageName": "github.com/pkg/errors", "packageManager": "GO", "requirements": "= 0.9.1", "repository": null}]
  }}]
}}}}`)
	}))
	defer server.Close()

	var logs strings.Builder
	ctx := zerolog.New(&logs).WithContext(context.Background())
	adapter, err := NewGitHubDependencyAdapter(server.Client(), server.URL)
	require.NoError(t, err)
	graph, err := adapter.ListDependencies(ctx, types.Repository{Owner: "acme", Name: "widgets"})
	require.NoError(t, err)
	require.Len(t, graph.Dependencies, 1)
	require.Contains(t, logs.String(), "dependency graph manifests truncated")
	require.Contains(t, logs.String(), "manifest dependencies truncated")
	require.Contains(t, logs.String(), `"manifest":"go.mod"`)
}

func TestGitHubDependencyAdapterSurfacesGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": null, "errors": [{"message": "Could not resolve to a Repository with the name 'acme/missing'."}]}`)
	}))
	defer server.Close()

	adapter, err := NewGitHubDependencyAdapter(server.Client(), server.URL)
	require.NoError(t, err)
	_, err = adapter.ListDependencies(context.Background(), types.Repository{Owner: "acme", Name: "missing"})
	require.Error(t, err)
}

func TestDependencyLicenseAccessorsAreNilSafe(t *testing.T) {
	var node *dependencyNode
	require.Equal(t, "", node.license())
	require.Equal(t, "", (&dependencyNode{}).license())
	require.Equal(t, "", (&dependencyNode{Repository: &dependencyRepository{}}).license())
	require.Equal(t, "MIT", (&dependencyNode{Repository: &dependencyRepository{LicenseInfo: &licenseInfo{Name: "MIT"}}}).license())
}

func TestGitHubDependencyAdapterRequiresRepository(t *testing.T) {
	adapter, err := NewGitHubDependencyAdapter(http.DefaultClient, "")
	require.NoError(t, err)
	_, err = adapter.ListDependencies(context.Background(), types.Repository{Owner: "acme"})
	require.Error(t, err)
}
