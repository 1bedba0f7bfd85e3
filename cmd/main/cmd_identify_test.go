package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/CTAG07/speakerid/pkg/speaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIdentifyFromFiles(t *testing.T) {
	dir, _ := setupTestConfig(t)
	a := writeFile(t, dir, "a.txt", "abababab")
	b := writeFile(t, dir, "b.txt", "cdcdcdcd")
	q := writeFile(t, dir, "q.txt", "abab")

	var out bytes.Buffer
	require.NoError(t, runIdentify(context.Background(), IdentifyOptions{}, a, b, q, 1, &out))

	want, err := speaker.Identify("abababab", "cdcdcdcd", "abab", 1)
	require.NoError(t, err)
	var wantOut bytes.Buffer
	require.NoError(t, want.WriteReport(&wantOut))

	assert.Equal(t, wantOut.String(), out.String())
	assert.Contains(t, out.String(), "Conclusion: Speaker A is most likely")
}

func TestRunIdentifyEmptyQuery(t *testing.T) {
	dir, _ := setupTestConfig(t)
	a := writeFile(t, dir, "a.txt", "abc")
	q := writeFile(t, dir, "q.txt", "")

	var out bytes.Buffer
	err := runIdentify(context.Background(), IdentifyOptions{}, a, a, q, 1, &out)
	assert.ErrorIs(t, err, speaker.ErrEmptyQuery)
	assert.Empty(t, out.String())
}

func TestRunIdentifyMissingFile(t *testing.T) {
	dir, _ := setupTestConfig(t)
	q := writeFile(t, dir, "q.txt", "abc")

	var out bytes.Buffer
	err := runIdentify(context.Background(), IdentifyOptions{}, dir+"/nope.txt", q, q, 1, &out)
	assert.Error(t, err)
}

func TestRunIdentifyStoredAndRecorded(t *testing.T) {
	dir, cm := setupTestConfig(t)
	ctx := context.Background()

	db, store, err := openStore(cm.Get().Server)
	require.NoError(t, err)
	_, err = store.PutSpeaker(ctx, "alice", "abababab")
	require.NoError(t, err)
	_, err = store.PutSpeaker(ctx, "bob", "cdcdcdcd")
	require.NoError(t, err)

	q := writeFile(t, dir, "q.txt", "cdcd")
	var out bytes.Buffer
	require.NoError(t, runIdentify(ctx, IdentifyOptions{Stored: true, Record: true}, "alice", "bob", q, 1, &out))
	assert.Contains(t, out.String(), "Conclusion: Speaker B is most likely")

	history, err := store.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "alice", history[0].SpeakerA)
	assert.Equal(t, "bob", history[0].SpeakerB)
	assert.Equal(t, speaker.LabelB, history[0].Label)
	assert.Equal(t, 4, history[0].QueryLength)

	err = runIdentify(ctx, IdentifyOptions{Stored: true}, "alice", "carol", q, 1, &out)
	assert.ErrorIs(t, err, corpus.ErrSpeakerNotFound)

	store.Close()
	require.NoError(t, db.Close())
}

func TestSpeakerCommands(t *testing.T) {
	dir, _ := setupTestConfig(t)
	ctx := context.Background()
	text := writeFile(t, dir, "kerry.txt", "my fellow americans")

	var out bytes.Buffer
	require.NoError(t, runSpeakerAdd(ctx, "kerry", text, &out))
	assert.Contains(t, out.String(), `stored speaker "kerry"`)

	out.Reset()
	require.NoError(t, runSpeakerList(ctx, &out))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "kerry")
	assert.Contains(t, out.String(), "19")

	require.NoError(t, runSpeakerRemove(ctx, "kerry"))
	assert.ErrorIs(t, runSpeakerRemove(ctx, "kerry"), corpus.ErrSpeakerNotFound)
}

func TestIdentifyCommandArgs(t *testing.T) {
	dir, _ := setupTestConfig(t)
	a := writeFile(t, dir, "a.txt", "aaaaaaaa")
	b := writeFile(t, dir, "b.txt", "bbbbbbbb")
	q := writeFile(t, dir, "q.txt", "aaaaa")

	var out bytes.Buffer
	cmdRoot.SetOut(&out)
	cmdRoot.SetArgs([]string{"identify", "--config", globalOptions.ConfigPath, a, b, q, "1"})
	t.Cleanup(func() {
		cmdRoot.SetOut(nil)
		cmdRoot.SetArgs(nil)
	})
	require.NoError(t, cmdRoot.Execute())
	assert.Equal(t, "Speaker A: 0.0\nSpeaker B: 0.0\n\nConclusion: Speaker A is most likely\n", out.String())

	cmdRoot.SetArgs([]string{"identify", "--config", globalOptions.ConfigPath, a, b, q, "one"})
	assert.Error(t, cmdRoot.Execute())
}
