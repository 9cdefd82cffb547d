// Package validation checks caller-supplied inputs before they reach the
// simulation engine, which computes whatever it is given.
package validation

import (
	"fmt"

	"github.com/iwvelando/consortium-simulator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
