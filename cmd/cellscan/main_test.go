package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/cellscan/cmd/cellscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows all commands", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
		require.NoError(t, err)

		for _, cmd := range []string{"discover", "scrape", "export", "upload", "show", "runs"} {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{}, stdout, stderr)
		assert.Error(t, err)
	})

	t.Run("unknown commands are rejected", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"frobnicate"}, stdout, stderr)
		assert.Error(t, err)
	})

	t.Run("export on an empty database reports no cells", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"export", "-o", filepath.Join(t.TempDir(), "cells.csv")}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "No cells found")
	})

	t.Run("runs on an empty database reports no runs", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"runs"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "No runs found")
	})

	t.Run("show reports a missing cell", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"show", "no-such-cell"}, stdout, stderr)
		require.Error(t, err)

		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("upload without a connection string is an error", func(t *testing.T) {
		t.Parallel()

		if os.Getenv("CELLSCAN_PG_DSN") != "" {
			t.Skip("CELLSCAN_PG_DSN is set")
		}

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"upload"}, stdout, stderr)
		require.Error(t, err)

		assert.Contains(t, err.Error(), "CELLSCAN_PG_DSN")
	})
}
