package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"codescan-report/internal/ports"
	"codescan-report/internal/shared"
	"codescan-report/internal/types"
)

const (
	EnvEventPath  = "GITHUB_EVENT_PATH"
	EnvRepository = "GITHUB_REPOSITORY"
)

// EventIdentityAdapter resolves the target repository from the workflow
// environment. An explicit Override wins, then the repository of the
// triggering event payload, then the GITHUB_REPOSITORY variable.
type EventIdentityAdapter struct {
	Override string
	Getenv   func(string) string
}

func NewEventIdentityAdapter(override string) EventIdentityAdapter {
	return EventIdentityAdapter{Override: override, Getenv: os.Getenv}
}

type eventPayload struct {
	Repository *struct {
		Name  string `json:"name"`
		Owner *struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

func (a EventIdentityAdapter) Resolve() (types.Repository, error) {
	if strings.TrimSpace(a.Override) != "" {
		return parseRepository(a.Override, "repository")
	}
	repo, err := a.fromEvent()
	if err != nil {
		return types.Repository{}, err
	}
	if !repo.IsZero() {
		return repo, nil
	}
	value := a.getenv(EnvRepository)
	if strings.TrimSpace(value) == "" {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository is not set: no event payload repository and " + EnvRepository + " is empty")
	}
	log.Warn().
		Str("repository", value).
		Msg("event payload carries no repository, using " + EnvRepository)
	return parseRepository(value, EnvRepository)
}

func (a EventIdentityAdapter) fromEvent() (types.Repository, error) {
	path := strings.TrimSpace(a.getenv(EnvEventPath))
	if path == "" {
		return types.Repository{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("event payload file does not exist")
		return types.Repository{}, nil
	}
	if err != nil {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read event payload").
			WithCause(err)
	}
	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse event payload").
			WithCause(err)
	}
	if payload.Repository == nil || payload.Repository.Owner == nil {
		return types.Repository{}, nil
	}
	return types.Repository{
		Owner: payload.Repository.Owner.Login,
		Name:  payload.Repository.Name,
	}, nil
}

func (a EventIdentityAdapter) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

func parseRepository(value string, source string) (types.Repository, error) {
	owner, name, ok := shared.SplitRepository(value)
	if !ok {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(source + " must be in owner/name form, got '" + value + "'")
	}
	return types.Repository{Owner: owner, Name: name}, nil
}

var _ ports.IdentityPort = EventIdentityAdapter{}
