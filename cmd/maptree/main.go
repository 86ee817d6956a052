// SPDX-License-Identifier: MIT

// Command maptree converts between flat, parent-referencing JSON collections & nested JSON
// forests.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
