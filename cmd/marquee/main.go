package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗╔═╗╦═╗╔═╗ ╦ ╦╔═╗╔═╗
  ║║║╠═╣╠╦╝║═╬╗║ ║║╣ ║╣
  ╩ ╩╩ ╩╩╚═╚═╝╚╚═╝╚═╝╚═╝
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "marquee",
		Short: "Server-driven marketing sites in Go",
		Long: `Marquee serves marketing sites whose interactive behavior runs in Go.

Pages render on the server; a thin JavaScript client relays DOM events
over WebSocket and applies the patches that come back. Features include:

  • Menu, scroll, form, and button behaviors handled server-side
  • SSR with a thin JavaScript client
  • Static export to a directory or S3
  • Prometheus metrics and graceful shutdown`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Marquee ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
