package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-sitepub/internal/commands/markdown"
)

const name = "markdown-convert"

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts bootstrap.Options
	fs := bootstrap.NewFlagSet(name, "<notes_dir> <target_dir>", stderr)
	opts.BindFlags(fs)

	positional, err := bootstrap.Positional(fs, args, 2)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	result, err := module.Convert(context.Background(), sitepub.ConvertCommand{
		NotesDir:  positional[0],
		TargetDir: positional[1],
	})
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	fmt.Fprintln(stdout, markdowncmd.Summary(result))
	return 0
}
