package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint is the suggested next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldComparisonID identifies one recorded comparison.
	FieldComparisonID = "comparison_id"
	// FieldReference is the reference shot or archive a motion is compared against.
	FieldReference = "reference"
	// FieldSimilarity carries a similarity percentage.
	FieldSimilarity = "similarity"
)
