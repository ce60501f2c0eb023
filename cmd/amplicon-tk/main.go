package main

import (
	"context"
	"fmt"
	"io"

	"github.com/nrminor/amplicon-tk/internal/appshell"
	"github.com/nrminor/amplicon-tk/internal/cli"
)

func main() {
	appshell.Main(func(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
		root := cli.NewRootCommand(stdout, stderr)
		root.SetArgs(argv)
		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	})
}
