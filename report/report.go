// Package report accumulates the diagnostics of a single recognition run.
// Errors and warnings are kept in two lists in the order they were recorded
// and are never deduplicated.
package report

type Report struct {
	errors   []error
	warnings []error
}

func New() *Report {
	return &Report{}
}

func (report *Report) Error(errs ...error) {
	report.errors = append(report.errors, errs...)
}

func (report *Report) Warn(warnings ...error) {
	report.warnings = append(report.warnings, warnings...)
}

func (report *Report) Errors() []error {
	return append([]error{}, report.errors...)
}

func (report *Report) Warnings() []error {
	return append([]error{}, report.warnings...)
}

func (report *Report) HasErrors() bool {
	return len(report.errors) > 0
}

func (report *Report) HasWarnings() bool {
	return len(report.warnings) > 0
}

// Merge appends other's errors and warnings, preserving their order.
func (report *Report) Merge(other *Report) {
	if other == nil || other == report {
		return
	}

	report.Error(other.errors...)
	report.Warn(other.warnings...)
}

// Messages renders a diagnostic list as strings.
func Messages(errs []error) []string {
	result := make([]string, 0, len(errs))
	for _, err := range errs {
		result = append(result, err.Error())
	}
	return result
}
