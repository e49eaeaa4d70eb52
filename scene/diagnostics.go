// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package scene

import (
	"fmt"
	"strings"
)

// Diagnostics accumulates the non-fatal problems found while validating
// a Raw scene. Nothing in this package panics or returns a Go error for
// a malformed scene value — see spec section 7 — callers inspect
// Diagnostics after Validate returns, mirroring hasError()/errorText()
// from the original implementation (original_source/hqz/src/zcheck.cpp).
type Diagnostics struct {
	messages []string
}

// Addf records a formatted diagnostic message.
func (d *Diagnostics) Addf(format string, args ...any) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// HasError reports whether any diagnostic was recorded.
func (d *Diagnostics) HasError() bool { return len(d.messages) > 0 }

// Error joins every recorded message with a newline, matching
// errorText()'s newline-separated log.
func (d *Diagnostics) Error() string { return strings.Join(d.messages, "\n") }

// Messages returns the recorded diagnostics in the order they were added.
func (d *Diagnostics) Messages() []string { return d.messages }
