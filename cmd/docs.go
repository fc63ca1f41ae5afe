package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docType codes whether the command is the root or a child
type docType int

const (
	root docType = iota
	child
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType  docType
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"crisprtools":          {root, "crisprtools", 0, ""},
	"crisprtools_merge":    {child, "merge", 0, "crisprtools"},
	"crisprtools_sanitise": {child, "sanitise", 1, "crisprtools"},
	"crisprtools_filter":   {child, "filter", 2, "crisprtools"},
	"crisprtools_extract":  {child, "extract", 3, "crisprtools"},
	"crisprtools_stat":     {child, "stat", 4, "crisprtools"},
	"crisprtools_draw":     {child, "draw", 5, "crisprtools"},
}

// docsCmd writes the Markdown documentation of every command.
var docsCmd = &cobra.Command{
	Use:    "docs [directory]",
	Short:  "Write Markdown documentation of each command",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		return makeDocs(dir)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs(dir string) error {
	rootCmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownTreeCustom(rootCmd, dir, filePrepender, linkHandler); err != nil {
		return errors.Wrapf(err, "failed to write docs to %s", dir)
	}
	return nil
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m, ok := metaMap[base]
	if !ok {
		return ""
	}

	switch m.docType {
	case root:
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
	}
	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "crisprtools" {
		return "/"
	}
	return base
}
