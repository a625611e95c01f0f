package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/remote"
)

func listBlogs(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	defer e.Close()

	all, err := e.svc.FetchBlogs(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), ExitRemoteError)
	}

	visible := listing.VisibleBlogs(all, c.String("category"), c.String("query"))
	if len(visible) == 0 {
		if category := c.String("category"); category != "" {
			fmt.Fprintf(os.Stdout, "No article/blog is present for the %q category.\n", category)
		} else {
			fmt.Fprintln(os.Stdout, "No blogs found.")
		}
		return nil
	}
	return writeBlogTable(os.Stdout, visible)
}

func showBlog(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: inkwell show <id>", ExitUsageError)
	}
	id, err := models.ParseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	e, err := loadEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	defer e.Close()

	blog, err := e.svc.FetchBlog(c.Context, id)
	if errors.Is(err, remote.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("Blog %s not found", id), ExitNotFound)
	}
	if err != nil {
		return cli.Exit(err.Error(), ExitRemoteError)
	}

	writeBlog(os.Stdout, blog, blogs.ShareURL(e.cfg.Server.ShareBase(), blog.ID), time.Now())
	return nil
}

func createBlog(c *cli.Context) error {
	draft := blogs.Draft{
		Title:       c.String("title"),
		Description: c.String("description"),
		Content:     c.String("content"),
		Category:    c.String("category"),
		CoverImage:  c.String("cover-url"),
	}

	if path := c.String("cover-file"); path != "" {
		if draft.CoverImage != "" {
			return cli.Exit("Use either --cover-url or --cover-file, not both", ExitUsageError)
		}
		cover, err := blogs.ReadCoverFile(path)
		if err != nil {
			return cli.Exit(err.Error(), ExitUsageError)
		}
		draft.CoverImage = cover
	}

	// Catch form errors before touching the config or the network.
	if err := draft.Validate(); err != nil {
		return cli.Exit(formatInvalid(err), ExitUsageError)
	}

	e, err := loadEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	defer e.Close()

	created, err := blogs.NewCreateFlow(e.svc).Submit(c.Context, draft)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not publish: %v", err), ExitRemoteError)
	}

	writeCreated(os.Stdout, created, blogs.ShareURL(e.cfg.Server.ShareBase(), created.ID))
	return nil
}

// formatInvalid lists each invalid flag on its own line.
func formatInvalid(err error) string {
	var invalid *blogs.ValidationError
	if !errors.As(err, &invalid) {
		return err.Error()
	}
	lines := make([]string, 0, len(invalid.Fields)+1)
	lines = append(lines, "Invalid post:")
	for _, f := range invalid.Fields {
		lines = append(lines, fmt.Sprintf("  --%s %s", flagName(f.Field), f.Message))
	}
	return strings.Join(lines, "\n")
}

func flagName(field string) string {
	if field == "coverImage" {
		return "cover-url/--cover-file"
	}
	return field
}
