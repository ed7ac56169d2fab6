package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrich <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fmt        Rewrite markdown files in normal form")
	fmt.Fprintln(w, "  html       Render a markdown file as an HTML preview")
	fmt.Fprintln(w, "  tree       Print the document tree of a markdown file")
	fmt.Fprintln(w, "  type       Replay typed text through the markdown shortcuts")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdrich help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one command and reports whether it
// exists.
func printCommandUsage(w io.Writer, name string) bool {
	switch name {
	case "fmt":
		printFmtUsage(w)
	case "html":
		printHTMLUsage(w)
	case "tree":
		printTreeUsage(w)
	case "type":
		printTypeUsage(w)
	default:
		return false
	}
	return true
}

func printFmtUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrich fmt <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import each markdown file into a document and export it back.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: in place)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --check               List files not in normal form, write nothing")
	fmt.Fprintln(w, "      --watch               Keep running and reformat files as they change")
	printCommonFlags(w)
}

func printHTMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrich html <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the normal form of a markdown file as standalone HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --css <path>          Stylesheet to inline")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "      --hard-wraps          Render single newlines as <br> (default true)")
	printCommonFlags(w)
}

func printTreeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrich tree <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import a markdown file and print the document tree as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	printCommonFlags(w)
}

func printTypeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrich type <text>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type text one character at a time into an editor with markdown")
	fmt.Fprintln(w, "shortcuts, then print the exported markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  text     Text to type; \\n presses Enter. Use - to read stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --tree                Print the document tree instead")
	printCommonFlags(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log rule activity to stderr")
	fmt.Fprintln(w, "      --lookbehind          Use the lookbehind tag patterns")
}
