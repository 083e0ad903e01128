package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

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

// meta is for describing the position/info for a command doc page
type meta struct {
	root     bool
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"duplexcall":          {true, "duplexcall", 0, ""},
	"duplexcall_pairs":    {false, "pairs", 0, "duplexcall"},
	"duplexcall_basecall": {false, "basecall", 1, "duplexcall"},
	"duplexcall_merge":    {false, "merge", 2, "duplexcall"},
	"duplexcall_export":   {false, "export", 3, "duplexcall"},
	"duplexcall_samples":  {false, "samples", 4, "duplexcall"},
	"duplexcall_check":    {false, "check", 5, "duplexcall"},
}

// docsCmd writes the Markdown documentation of every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown docs for the commands",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return makeDocs(dir)
	},
}

func init() {
	docsCmd.Flags().String("dir", "./docs", "output directory for the Markdown files")

	RootCmd.AddCommand(docsCmd)
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	RootCmd.DisableAutoGenTag = true
	return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	m, ok := metaMap[pageName(filename)]
	if !ok {
		return ""
	}
	if m.root {
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	}
	return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	if base := pageName(filename); base != "duplexcall" {
		return base
	}
	return "/"
}

func pageName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}
