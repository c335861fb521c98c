// Package main is the entry point for the pricewatch CLI client.
package main

import (
	"github.com/marketwatch/pricewatch/cmd/pricewatch/cmd"
)

func main() {
	cmd.Execute()
}
