package adapters

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"codescan-report/internal/ports"
	"codescan-report/internal/types"
)

type ReportConfigFileAdapter struct{}

func NewReportConfigFileAdapter() ReportConfigFileAdapter {
	return ReportConfigFileAdapter{}
}

// Load reads pivot layouts from a YAML file. An empty path yields the
// zero config.
func (a ReportConfigFileAdapter) Load(path string) (types.ReportConfig, error) {
	if strings.TrimSpace(path) == "" {
		return types.ReportConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ReportConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("report config file not found").
			WithCause(err)
	}
	var cfg types.ReportConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return types.ReportConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse report config yaml").
			WithCause(err)
	}
	return cfg, nil
}

var _ ports.ReportConfigPort = ReportConfigFileAdapter{}
