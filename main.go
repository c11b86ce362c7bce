package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/scribe/internal/commands"
	"github.com/gerunddev/scribe/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		commands.Edit(nil)
		return
	}

	command := os.Args[1]

	switch command {
	case "edit", "open":
		commands.Edit(os.Args[2:])
	case "import":
		commands.Import(os.Args[2:])
	case "export":
		commands.Export(os.Args[2:])
	case "convert":
		commands.Convert(os.Args[2:])
	case "stats":
		commands.Stats()
	case "diff":
		commands.Diff()
	case "clear":
		commands.Clear()
	case "status":
		commands.Status()
	case "version", "-v", "--version":
		fmt.Printf("scribe v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`scribe - Terminal document editor with visual, Markdown and raw source modes

Usage:
  scribe [command] [options]

Commands:
  edit        Open the editor (default), optionally loading a file
  import      Load a Markdown, HTML or text file into the document
  export      Write the document to the export directory
  convert     Convert a file between Markdown and HTML
  stats       Print word and character counts
  diff        Compare stored Markdown with a fresh HTML conversion
  clear       Empty the document
  status      Show the stored document and recent activity
  version     Show version information
  help        Show this help message

Examples:
  scribe
  scribe edit notes.md
  scribe import page.html
  scribe export --out ~/Desktop
  scribe convert notes.md --to html
  scribe status

Editor keys:
  F1 visual • F2 markdown • F3 raw source • ctrl+l raw language
  ctrl+s save • ctrl+e export • ctrl+o import • ctrl+k clear • ctrl+c quit

Configuration:
  Config file: %s
`, config.ConfigPath())
	fmt.Print(usage)
}
