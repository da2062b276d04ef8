package canonical

// ValidationResult reports a document's structural and semantic checks.
// Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the structural completeness and semantic invariants of a
// canonical document. Every check runs; nothing short-circuits.
func Validate(doc *Document) ValidationResult {
	var errs []string

	if doc.Test.Simulation == "" {
		errs = append(errs, "test.simulation must not be empty")
	}
	if doc.Test.Type == "" {
		errs = append(errs, "test.type must not be empty")
	}
	if doc.Test.Environment.Type == "" {
		errs = append(errs, "test.environment.type must not be empty")
	}
	if doc.Test.Environment.URL == "" {
		errs = append(errs, "test.environment.url must not be empty")
	}

	minSec, minOK := DurationSeconds(doc.Test.Load.Pause.Min)
	maxSec, maxOK := DurationSeconds(doc.Test.Load.Pause.Max)
	if minOK && maxOK && minSec > maxSec {
		errs = append(errs, "pause.min cannot be greater than pause.max")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
