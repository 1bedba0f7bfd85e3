package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/CTAG07/speakerid/pkg/speaker"
	"github.com/spf13/cobra"
)

var cmdIdentify = &cobra.Command{
	Use:   "identify <speaker A> <speaker B> <unidentified text> <order>",
	Short: "Decide which speaker most likely produced a text",
	Long: `
The "identify" command trains an order-k character Markov model on the text of
each speaker and prints both models' log probabilities of the unidentified
text, normalized by its length, followed by the more likely speaker.

Speakers are file paths, or stored speaker names with --stored. Ties are
reported as speaker A.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	Args:              cobra.ExactArgs(4),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("order must be an integer: %w", err)
		}
		return runIdentify(cmd.Context(), identifyOptions, args[0], args[1], args[2], order, cmd.OutOrStdout())
	},
}

// IdentifyOptions bundles all options for the identify command.
type IdentifyOptions struct {
	Stored bool
	Record bool
}

var identifyOptions IdentifyOptions

func init() {
	cmdRoot.AddCommand(cmdIdentify)

	f := cmdIdentify.Flags()
	f.BoolVar(&identifyOptions.Stored, "stored", false, "treat speaker A and B as names of stored speakers instead of files")
	f.BoolVar(&identifyOptions.Record, "record", false, "save the result to the identification history")
}

func runIdentify(ctx context.Context, opts IdentifyOptions, a, b, queryPath string, order int, out io.Writer) error {
	cm, err := NewConfigManager(globalOptions.ConfigPath)
	if err != nil {
		return err
	}
	cfg := cm.Get()
	logger := newLogger(cfg.Server.LogLevel)

	query, err := os.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("failed to read unidentified text: %w", err)
	}

	var store *corpus.Store
	if opts.Stored || opts.Record {
		db, s, err := openStore(cfg.Server)
		if err != nil {
			return err
		}
		defer func() {
			s.Close()
			_ = db.Close()
		}()
		store = s
		store.SetLogger(logger)
	}

	var textA, textB string
	if opts.Stored {
		if textA, err = storedText(ctx, store, a); err != nil {
			return err
		}
		if textB, err = storedText(ctx, store, b); err != nil {
			return err
		}
	} else {
		if textA, err = fileText(a); err != nil {
			return err
		}
		if textB, err = fileText(b); err != nil {
			return err
		}
	}

	res, err := speaker.NewIdentifier(speaker.WithLogger(logger)).Identify(textA, textB, string(query), order)
	if err != nil {
		return err
	}

	if opts.Record {
		_, err = store.RecordIdentification(ctx, corpus.Identification{
			SpeakerA:    a,
			SpeakerB:    b,
			Order:       order,
			QueryLength: utf8.RuneCount(query),
			ScoreA:      res.ScoreA,
			ScoreB:      res.ScoreB,
			Label:       res.Label,
		})
		if err != nil {
			logger.Error("Failed to record identification", slog.Any("error", err))
		}
	}

	return res.WriteReport(out)
}

func storedText(ctx context.Context, store *corpus.Store, name string) (string, error) {
	sp, err := store.GetSpeaker(ctx, name)
	if err != nil {
		return "", err
	}
	return sp.Text, nil
}

func fileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read speaker text: %w", err)
	}
	return string(data), nil
}
