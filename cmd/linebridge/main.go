package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/wagiedev/linebridge/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if exitErr, ok := errors.AsType[*cmd.ExitError](err); ok {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
