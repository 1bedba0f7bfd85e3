package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
}

var globalOptions GlobalOptions

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "speakerid",
	Short: "Guess which of two speakers wrote a text",
	Long: `
speakerid trains a character-level Markov model on text from each of two
speakers and reports which model makes an unidentified text more likely.

Speaker texts can be passed as files or stored by name in a local database,
and the same comparison is available over a JSON HTTP API.
`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	f := cmdRoot.PersistentFlags()
	f.StringVar(&globalOptions.ConfigPath, "config", "./config.json", "path to the JSON config file, created with defaults if missing")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
