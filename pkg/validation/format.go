// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateView checks if the schedule view is one of the supported views.
func ValidateView(view string) error {
	if view != constants.ViewMonthly && view != constants.ViewYearly {
		return fmt.Errorf("expected view of %s or %s, got %s",
			constants.ViewMonthly, constants.ViewYearly, view)
	}
	return nil
}
