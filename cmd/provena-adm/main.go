package main

import (
	"fmt"
	"os"

	"github.com/provena-labs/provena-contract/cmd/provena-adm/internal/modules"
)

func main() {
	if err := modules.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
