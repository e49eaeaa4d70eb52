// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package scene

import "time"

// deriveSeed produces a base seed from the wall clock when the scene
// does not specify one explicitly (spec section 6, 'seed' field).
func deriveSeed() int64 {
	return time.Now().UnixNano()
}
