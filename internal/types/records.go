package types

import "strings"

type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

func (r Repository) IsZero() bool {
	return strings.TrimSpace(r.Owner) == "" || strings.TrimSpace(r.Name) == ""
}

// AlertRecord is one code scanning alert flattened to strings. Optional
// timestamps and actors are empty when the platform omits them.
type AlertRecord struct {
	ToolName    string
	ToolVersion string
	Number      string
	URL         string
	State       string
	Rule        string
	Severity    string
	Path        string
	StartLine   string
	EndLine     string
	CreatedAt   string
	UpdatedAt   string
	FixedAt     string
	DismissedAt string
	DismissedBy string
}

// DependencyRecord is one manifest to package edge of the dependency graph.
type DependencyRecord struct {
	Manifest       string
	PackageName    string
	PackageManager string
	Requirements   string
	License        string
}

type DependencyGraph struct {
	License      string
	Dependencies []DependencyRecord
}
