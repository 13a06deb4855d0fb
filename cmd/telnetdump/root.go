package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "telnetdump",
	Short: "Dial a Telnet peer and render its framing/ANSI events live",
	Long: "telnetdump exercises the telnet and ansi codecs against a real " +
		"peer: it dials the given address, decodes every Telnet frame it " +
		"receives, passes data bytes through to stdout unparsed, and prints " +
		"a colorized log of every other event while transparently proxying " +
		"the operator's keystrokes back out.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "telnetdump.yaml", "preferences file path")
	rootCmd.AddCommand(connectCmd)
}
