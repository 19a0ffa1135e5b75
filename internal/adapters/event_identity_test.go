package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescan-report/internal/types"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestEventIdentityAdapterPrefersEventPayload(t *testing.T) {
	eventPath := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventPath, []byte(`{"repository": {"name": "gadgets", "owner": {"login": "octo-org"}}}`), 0644))

	adapter := EventIdentityAdapter{Getenv: envFrom(map[string]string{
		EnvEventPath:  eventPath,
		EnvRepository: "acme/widgets",
	})}
	repo, err := adapter.Resolve()
	require.NoError(t, err)
	assert.Equal(t, types.Repository{Owner: "octo-org", Name: "gadgets"}, repo)
}

func TestEventIdentityAdapterFallsBackToEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		event string
	}{
		{name: "no event path"},
		{name: "event without repository", event: `{"action": "completed"}`},
		{name: "missing event file", event: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{EnvRepository: "acme/widgets"}
			switch tt.event {
			case "":
			case "-":
				env[EnvEventPath] = filepath.Join(t.TempDir(), "absent.json")
			default:
				path := filepath.Join(t.TempDir(), "event.json")
				require.NoError(t, os.WriteFile(path, []byte(tt.event), 0644))
				env[EnvEventPath] = path
			}
			repo, err := EventIdentityAdapter{Getenv: envFrom(env)}.Resolve()
			require.NoError(t, err)
			assert.Equal(t, "acme", repo.Owner)
			assert.Equal(t, "widgets", repo.Name)
		})
	}
}

func TestEventIdentityAdapterOverride(t *testing.T) {
	adapter := EventIdentityAdapter{
		Override: "other/repo",
		Getenv:   envFrom(map[string]string{EnvRepository: "acme/widgets"}),
	}
	repo, err := adapter.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "other/repo", repo.String())
}

func TestEventIdentityAdapterErrors(t *testing.T) {
	badEvent := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(badEvent, []byte("{not json"), 0644))

	tests := []struct {
		name    string
		adapter EventIdentityAdapter
	}{
		{name: "nothing set", adapter: EventIdentityAdapter{Getenv: envFrom(nil)}},
		{name: "malformed repository", adapter: EventIdentityAdapter{Getenv: envFrom(map[string]string{EnvRepository: "widgets"})}},
		{name: "malformed override", adapter: EventIdentityAdapter{Override: "a/b/c", Getenv: envFrom(nil)}},
		{name: "malformed event", adapter: EventIdentityAdapter{Getenv: envFrom(map[string]string{EnvEventPath: badEvent, EnvRepository: "acme/widgets"})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.adapter.Resolve()
			require.Error(t, err)
		})
	}
}
