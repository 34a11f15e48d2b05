// Command lvbnb solves, generates and cross-checks 0/1 knapsack instances.
//
//	lvbnb gen --class strong -n 40 --seed 7 -o strong40.yaml
//	lvbnb solve strong40.yaml --time-budget 2s --workers 4
//	lvbnb verify strong40.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvbnb:", err)
		os.Exit(1)
	}
}
