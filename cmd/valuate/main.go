package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, valuation.ErrInvalidConfiguration) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
