package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render markdown files to HTML")
	fmt.Fprintln(w, "  watch        Re-render a markdown file when it changes")
	fmt.Fprintln(w, "  css          Print the preview stylesheet")
	fmt.Fprintln(w, "  stats        Count lines, words, bytes and characters")
	fmt.Fprintln(w, "  config       Print the effective configuration")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpreview help <command>' for details on a specific command.")
	fmt.Fprintln(w, "'mdpreview <file.md>' is short for 'mdpreview render <file.md>'.")
}

// printStyleFlagsUsage prints the converter flags shared by render and watch.
func printStyleFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <s>           Stylesheet theme: dark, light")
	fmt.Fprintln(w, "      --engine <s>          Engine: builtin, commonmark")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style (implies --highlight)")
	fmt.Fprintln(w, "      --toc-title <s>       Table of contents heading")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w, "      --unique-slugs        Suffix repeated heading IDs with -2, -3, ...")
	fmt.Fprintln(w, "      --sanitize            Filter output through an HTML allow-list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --fragment            Write the HTML fragment only")
	fmt.Fprintln(w, "      --title <s>           Document title (default: first heading)")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended to the theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin (default: stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --exclude <glob>      Skip matching paths in directories (repeatable)")
	fmt.Fprintln(w)
	printStyleFlagsUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview watch <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file, then re-render it each time it is saved.")
	fmt.Fprintln(w, "Saves that leave the content unchanged are skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before re-rendering (default: 300ms)")
	fmt.Fprintln(w)
	printStyleFlagsUsage(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the stylesheet embedded in standalone documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --theme <s>           Stylesheet theme: dark, light")
	fmt.Fprintln(w, "      --highlight-style <s> Append rules for a chroma style")
}

// printStatsUsage prints usage for the stats command.
func printStatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview stats [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Count lines, words, bytes and characters of a markdown file or stdin.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w, "Precedence: config file, then MDPREVIEW_* environment variables.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "stats":
		printStatsUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
