package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
)

const name = "sitemap-update"

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts bootstrap.Options
	fs := bootstrap.NewFlagSet(name, "<all_sitemap_path> <live_sitemap_path> <dead_sitemap_path> <robot_txt_path>", stderr)
	opts.BindFlags(fs)
	site := fs.String("site", "", "Site host or scheme://host overriding dominant-site detection")

	positional, err := bootstrap.Positional(fs, args, 4)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	result, err := module.UpdateSitemap(context.Background(), sitepub.UpdateSitemapCommand{
		AllPath:    positional[0],
		LivePath:   positional[1],
		DeadPath:   positional[2],
		RobotsPath: positional[3],
		Site:       *site,
	})
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	fmt.Fprintf(stdout, "site=%s all=%d live=%d dead=%d\n", result.Site, result.AllCount, result.LiveCount, result.DeadCount)
	return 0
}
