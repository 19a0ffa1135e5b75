package adapters

import (
	"context"
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/shurcooL/githubv4"

	"codescan-report/internal/ports"
	"codescan-report/internal/types"
)

const (
	defaultManifestsPerQuery    = 100
	defaultDependenciesPerQuery = 100
)

// GitHubDependencyAdapter reads the dependency graph of a repository with
// a single GraphQL query.
type GitHubDependencyAdapter struct {
	Client          *githubv4.Client
	Manifests       int
	DependenciesPer int
}

func NewGitHubDependencyAdapter(httpClient *http.Client, graphqlURL string) (GitHubDependencyAdapter, error) {
	endpoint, err := parseBaseURL(graphqlURL, DefaultGitHubGraphQLURL)
	if err != nil {
		return GitHubDependencyAdapter{}, err
	}
	client := githubv4.NewEnterpriseClient(strings.TrimRight(endpoint.String(), "/"), withAcceptHeader(httpClient, dependencyGraphPreview))
	return GitHubDependencyAdapter{
		Client:          client,
		Manifests:       defaultManifestsPerQuery,
		DependenciesPer: defaultDependenciesPerQuery,
	}, nil
}

type licenseInfo struct {
	Name githubv4.String
}

type dependencyRepository struct {
	LicenseInfo *licenseInfo
}

type dependencyNode struct {
	PackageName    githubv4.String
	PackageManager githubv4.String
	Requirements   githubv4.String
	Repository     *dependencyRepository
}

type pageInfo struct {
	HasNextPage githubv4.Boolean
}

type manifestNode struct {
	Filename     githubv4.String
	Dependencies struct {
		Nodes    []*dependencyNode
		PageInfo pageInfo
	} `graphql:"dependencies(first: $dependencies)"`
}

type dependencyGraphQuery struct {
	Repository struct {
		LicenseInfo              *licenseInfo
		DependencyGraphManifests struct {
			Nodes    []*manifestNode
			PageInfo pageInfo
		} `graphql:"dependencyGraphManifests(first: $manifests)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

func (l *licenseInfo) name() string {
	if l == nil {
		return ""
	}
	return string(l.Name)
}

func (r *dependencyRepository) license() string {
	if r == nil {
		return ""
	}
	return r.LicenseInfo.name()
}

func (d *dependencyNode) license() string {
	if d == nil {
		return ""
	}
	return d.Repository.license()
}

// ListDependencies returns one record per (manifest, dependency) edge.
// Missing license information at any level, including a null edge, yields
// an empty license. Connections cut off by the page size are logged.
func (a GitHubDependencyAdapter) ListDependencies(ctx context.Context, repo types.Repository) (types.DependencyGraph, error) {
	if repo.IsZero() {
		return types.DependencyGraph{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository owner and name are required")
	}
	var query dependencyGraphQuery
	variables := map[string]interface{}{
		"owner":        githubv4.String(repo.Owner),
		"name":         githubv4.String(repo.Name),
		"manifests":    githubv4.Int(positiveOr(a.Manifests, defaultManifestsPerQuery)),
		"dependencies": githubv4.Int(positiveOr(a.DependenciesPer, defaultDependenciesPerQuery)),
	}
	if err := a.Client.Query(ctx, &query, variables); err != nil {
		return types.DependencyGraph{}, githubError(err, "failed to query dependency graph for "+repo.String())
	}

	graph := types.DependencyGraph{
		License: query.Repository.LicenseInfo.name(),
	}
	manifests := query.Repository.DependencyGraphManifests
	if manifests.PageInfo.HasNextPage {
		log.Ctx(ctx).Warn().
			Str("repository", repo.String()).
			Int("manifests", len(manifests.Nodes)).
			Msg("dependency graph manifests truncated")
	}
	for _, manifest := range manifests.Nodes {
		if manifest == nil {
			continue
		}
		if manifest.Dependencies.PageInfo.HasNextPage {
			log.Ctx(ctx).Warn().
				Str("repository", repo.String()).
				Str("manifest", string(manifest.Filename)).
				Int("dependencies", len(manifest.Dependencies.Nodes)).
				Msg("manifest dependencies truncated")
		}
		for _, dep := range manifest.Dependencies.Nodes {
			graph.Dependencies = append(graph.Dependencies, dependencyRecord(string(manifest.Filename), dep))
		}
	}
	log.Ctx(ctx).Debug().
		Str("repository", repo.String()).
		Str("license", graph.License).
		Int("manifests", len(manifests.Nodes)).
		Int("dependencies", len(graph.Dependencies)).
		Msg("dependency graph fetched")
	return graph, nil
}

func dependencyRecord(manifest string, dep *dependencyNode) types.DependencyRecord {
	record := types.DependencyRecord{
		Manifest: manifest,
		License:  dep.license(),
	}
	if dep != nil {
		record.PackageName = string(dep.PackageName)
		record.PackageManager = string(dep.PackageManager)
		record.Requirements = string(dep.Requirements)
	}
	return record
}

func positiveOr(value int, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

var _ ports.DependencySourcePort = GitHubDependencyAdapter{}
