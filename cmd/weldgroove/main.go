// Command weldgroove builds, plots and checks ISO 9692-1 weld groove
// profiles.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
