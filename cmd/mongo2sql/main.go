package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/poki/mongodb-filter-to-sql/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Command runs already reported their errors; flag errors have not.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
