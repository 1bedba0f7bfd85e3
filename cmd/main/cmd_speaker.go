package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/spf13/cobra"
)

var cmdSpeaker = &cobra.Command{
	Use:   "speaker",
	Short: "Manage stored speakers",
	Long: `
The "speaker" command manages the named speaker texts kept in the database,
which "identify --stored" and the HTTP API train on.
`,
	DisableAutoGenTag: true,
}

var cmdSpeakerAdd = &cobra.Command{
	Use:               "add <name> <file>",
	Short:             "Store the text of a file under a speaker name",
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeakerAdd(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
	},
}

var cmdSpeakerList = &cobra.Command{
	Use:               "list",
	Short:             "List stored speakers",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeakerList(cmd.Context(), cmd.OutOrStdout())
	},
}

var cmdSpeakerRemove = &cobra.Command{
	Use:               "remove <name>",
	Short:             "Remove a stored speaker and its history",
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeakerRemove(cmd.Context(), args[0])
	},
}

func init() {
	cmdRoot.AddCommand(cmdSpeaker)
	cmdSpeaker.AddCommand(cmdSpeakerAdd, cmdSpeakerList, cmdSpeakerRemove)
}

func runSpeakerAdd(ctx context.Context, name, path string, out io.Writer) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read speaker text: %w", err)
	}
	return withStore(func(s *corpus.Store) error {
		id, err := s.PutSpeaker(ctx, name, string(text))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "stored speaker %q (id %d)\n", name, id)
		return err
	})
}

func runSpeakerList(ctx context.Context, out io.Writer) error {
	return withStore(func(s *corpus.Store) error {
		speakers, err := s.ListSpeakers(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tCHARACTERS\tSTORED")
		for _, sp := range speakers {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", sp.Name, sp.Length, sp.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return tw.Flush()
	})
}

func runSpeakerRemove(ctx context.Context, name string) error {
	return withStore(func(s *corpus.Store) error {
		return s.RemoveSpeaker(ctx, name)
	})
}
