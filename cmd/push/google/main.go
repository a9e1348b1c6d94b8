package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
)

const name = "push-google"

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts bootstrap.Options
	fs := bootstrap.NewFlagSet(name, "<sitemap_txt_path> <sitemap_dead_path> <json_key_path>", stderr)
	opts.BindFlags(fs)

	positional, err := bootstrap.Positional(fs, args, 3)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	ctx := context.Background()
	notifier, err := module.GoogleNotifier(ctx, positional[2])
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	report, err := module.Push(ctx, notifier, sitepub.PushCommand{
		UpdatedPath: positional[0],
		RemovedPath: positional[1],
	})
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	fmt.Fprintf(stdout, "provider=%s sent=%d failed=%d\n", report.Provider, report.Sent, report.Failed)
	return 0
}
