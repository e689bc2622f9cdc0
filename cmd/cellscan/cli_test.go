package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/cellscan/cmd/cellscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	// Parse --help (Kong writes help to stdout)
	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()

	expectedCommands := []string{"discover", "scrape", "export", "upload", "show", "runs"}
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"discover"})
	require.NoError(t, err)

	assert.Equal(t, "cell_urls.txt", cli.Discover.Output)
	assert.Equal(t, "https://www.batemo.com/products/batemo-cell-explorer/", cli.Discover.BaseURL)
	assert.Equal(t, "normal", cli.Discover.Mode)
	assert.Equal(t, "power-vs-energy-gravimetric", cli.Discover.View)
	assert.Equal(t, 200, cli.Discover.MaxPages)
	assert.Equal(t, 1.0, cli.RPS)
	assert.False(t, cli.Verbose)
}

func TestCLI_UploadMode(t *testing.T) {
	t.Parallel()

	t.Run("defaults to upsert", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"upload"})
		require.NoError(t, err)

		assert.Equal(t, "upsert", cli.Upload.Mode)
	})

	t.Run("rejects unknown modes", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"upload", "--mode", "replace"})
		assert.Error(t, err)
	})
}

func TestCLI_ScrapeArgs(t *testing.T) {
	t.Parallel()

	t.Run("requires a URL file argument", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"scrape"})
		assert.Error(t, err)
	})

	t.Run("parses concurrency flag", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"scrape", "urls.txt", "-c", "8"})
		require.NoError(t, err)

		assert.Equal(t, "urls.txt", cli.Scrape.URLFile)
		assert.Equal(t, 8, cli.Scrape.Concurrency)
	})
}
