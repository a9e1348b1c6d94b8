package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
)

const name = "sitemap-build"

var moduleBuilder = bootstrap.BuildModule

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts bootstrap.Options
	fs := bootstrap.NewFlagSet(name, "<sitemap_all_path> <posts_path> <sitemap_xml_path> <sitemap_txt_path> <sitemap_dead_path> <robot_txt_path>", stderr)
	opts.BindFlags(fs)
	site := fs.String("site", "", "Site host or scheme://host overriding dominant-site detection")

	positional, err := bootstrap.Positional(fs, args, 6)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}

	result, err := module.BuildSitemap(context.Background(), sitepub.BuildSitemapCommand{
		AllPath:    positional[0],
		PostsDir:   positional[1],
		XMLPath:    positional[2],
		TextPath:   positional[3],
		DeadPath:   positional[4],
		RobotsPath: positional[5],
		Site:       *site,
	})
	if err != nil {
		return bootstrap.Fail(stderr, name, err)
	}
	fmt.Fprintf(stdout, "site=%s entries=%d live=%d dead=%d skipped=%d\n",
		result.Site, result.Entries, result.LiveCount, result.DeadCount, len(result.Skipped))
	return 0
}
