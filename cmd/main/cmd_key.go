package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// KeyOptions bundles the flags of the "key create" command.
type KeyOptions struct {
	Scopes      []string
	Description string
}

var keyOptions KeyOptions

var cmdKey = &cobra.Command{
	Use:   "key",
	Short: "Manage API keys",
	Long: `
The "key" command manages the keys the HTTP API accepts in the speakerid-auth
header. The API is open until the first key exists, and the first key always
receives the master scope "*".
`,
	DisableAutoGenTag: true,
}

var cmdKeyCreate = &cobra.Command{
	Use:               "create",
	Short:             "Create an API key and print it once",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyCreate(cmd.Context(), keyOptions, cmd.OutOrStdout())
	},
}

func init() {
	cmdRoot.AddCommand(cmdKey)
	cmdKey.AddCommand(cmdKeyCreate)

	f := cmdKeyCreate.Flags()
	f.StringSliceVar(&keyOptions.Scopes, "scope", nil, "scope granted to the key (repeatable)")
	f.StringVar(&keyOptions.Description, "description", "", "free-form note stored with the key")
}

func runKeyCreate(ctx context.Context, opts KeyOptions, out io.Writer) error {
	cm, err := NewConfigManager(globalOptions.ConfigPath)
	if err != nil {
		return err
	}
	db, err := openDB(cm.Get().Server)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	resp, err := createAPIKey(ctx, db, CreateKeyRequest{Scopes: opts.Scopes, Description: opts.Description})
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}
	_, err = fmt.Fprintf(out, "key %d (%s): %s\n", resp.ID, strings.Join(resp.Scopes, " "), resp.RawKey)
	return err
}
