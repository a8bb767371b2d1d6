package main

import (
	"fmt"
	"os"

	"github.com/nagisham/syren/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "syren:", err)
		os.Exit(1)
	}
}
