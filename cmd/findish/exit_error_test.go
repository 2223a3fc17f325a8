// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"findish-cli/pkg/types"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("boom")
	e := &ExitError{Code: types.ExitCode(1), Err: wrapped}
	if e.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", e.Error(), "boom")
	}
	if !errors.Is(e, wrapped) {
		t.Error("ExitError does not unwrap to its cause")
	}

	bare := &ExitError{Code: types.ExitCode(2)}
	if bare.Error() != "exit status 2" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 2")
	}
}
