/*
validate.go - Precondition checks for the analytics pipeline

PURPOSE:
  Rejects structurally invalid input before any processing. Validation is
  the only place the pipeline fails: once it passes, accumulation absorbs
  every per-record data quality problem silently.

CHECK ORDER (mirrors failure taxonomy):
  1. Data present, all three collections are sequences, none empty
  2. Both policies present in the config

No side effects; purely a precondition check run before any mutation.

SEE ALSO:
  - errors.go: The error taxonomy raised here
  - analyze.go: Calls Validate before indexing
*/
package analytics

// Validate checks the top-level shape of the input and the completeness of
// the policy configuration. It returns nil when the pipeline may proceed.
func Validate(data *Dataset, config Config) error {
	if data == nil {
		return &InvalidDataError{Field: "data", Reason: "missing"}
	}
	if err := checkCollection("sellers", data.Sellers == nil, len(data.Sellers)); err != nil {
		return err
	}
	if err := checkCollection("products", data.Products == nil, len(data.Products)); err != nil {
		return err
	}
	if err := checkCollection("purchase_records", data.PurchaseRecords == nil, len(data.PurchaseRecords)); err != nil {
		return err
	}
	return config.Validate()
}

func checkCollection(field string, absent bool, length int) error {
	if absent {
		return &InvalidDataError{Field: field, Reason: "not a sequence"}
	}
	if length == 0 {
		return &InvalidDataError{Field: field, Reason: "empty"}
	}
	return nil
}
