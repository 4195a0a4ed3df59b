// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit without an extra error message.
// The command has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Printed reports whether err needs to be shown to the user: false for
// nil and for an ExitError, which the command already explained.
func Printed(err error) bool {
	if err == nil {
		return false
	}
	_, silent := err.(*ExitError)
	return !silent
}
