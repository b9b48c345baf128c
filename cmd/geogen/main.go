// SPDX-License-Identifier: MIT

// Command geogen generates geometric configurations layer by layer.
//
//	geogen generate --layout Triangle --constructions Midpoint,Centroid --iterations 2
//	geogen generate --config run.yaml --workers 4
//	geogen catalogue
//	geogen layouts
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
