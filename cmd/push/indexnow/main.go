package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
)

const name = "push-indexnow"

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts bootstrap.Options
	fs := bootstrap.NewFlagSet(name, "<sitemap_txt_path> <key>", stderr)
	opts.BindFlags(fs)

	positional, err := bootstrap.Positional(fs, args, 2)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	notifier, err := module.IndexNowNotifier(positional[1])
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	report, err := module.Push(context.Background(), notifier, sitepub.PushCommand{UpdatedPath: positional[0]})
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	fmt.Fprintf(stdout, "provider=%s sent=%d failed=%d\n", report.Provider, report.Sent, report.Failed)
	return 0
}
