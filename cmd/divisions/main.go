package main

import (
	"fmt"
	"os"

	"github.com/gng-scout/athlete-directory-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "divisions:", err)
		os.Exit(1)
	}
}
