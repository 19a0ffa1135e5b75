package core

import (
	"fmt"
	"strconv"
	"strings"

	"codescan-report/internal/types"
)

// Aggregator reduces the value cells of one pivot bucket. It is called
// with an empty slice for buckets no row fell into.
type Aggregator func(values []string) (string, error)

func defaultAggregators() map[types.AggregatorName]Aggregator {
	return map[types.AggregatorName]Aggregator{
		types.AggregatorCount:    countValues,
		types.AggregatorDistinct: countDistinct,
		types.AggregatorSum:      sumValues,
	}
}

func countValues(values []string) (string, error) {
	return strconv.Itoa(len(values)), nil
}

func countDistinct(values []string) (string, error) {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		seen[value] = struct{}{}
	}
	return strconv.Itoa(len(seen)), nil
}

// sumValues adds numeric cells. Blank cells contribute nothing.
func sumValues(values []string) (string, error) {
	total := 0.0
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "", fmt.Errorf("value %q is not numeric", value)
		}
		total += parsed
	}
	return strconv.FormatFloat(total, 'f', -1, 64), nil
}
