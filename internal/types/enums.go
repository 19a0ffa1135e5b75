package types

type AggregatorName string

const (
	AggregatorCount    AggregatorName = "count"
	AggregatorDistinct AggregatorName = "distinct"
	AggregatorSum      AggregatorName = "sum"
)

type AlertState string

const (
	AlertStateOpen      AlertState = "open"
	AlertStateDismissed AlertState = "dismissed"
	AlertStateFixed     AlertState = "fixed"
	AlertStateClosed    AlertState = "closed"
)

const (
	SheetCodeScanningIssues = "code-scanning-issues"
	SheetDependenciesList   = "dependencies-list"
	SheetDependenciesPivot  = "dependencies-Pivot"
	SheetCodeScanningPivot  = "code-scanning-Pivot"
)
