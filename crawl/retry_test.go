package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/cellscan"
	"github.com/fwojciec/cellscan/crawl"
	cellhttp "github.com/fwojciec/cellscan/http"
	"github.com/fwojciec/cellscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	t.Run("extracts the status from a fetch error", func(t *testing.T) {
		t.Parallel()

		err := &cellhttp.StatusError{StatusCode: 404, URL: "https://example.com/x"}

		assert.Equal(t, 404, crawl.HTTPStatus(err))
	})

	t.Run("unwraps wrapped errors", func(t *testing.T) {
		t.Parallel()

		base := &cellhttp.StatusError{StatusCode: 503, URL: "https://example.com/x"}
		err := errors.Join(errors.New("fetch failed"), base)

		assert.Equal(t, 503, crawl.HTTPStatus(err))
	})

	t.Run("returns zero for errors without a status", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, crawl.HTTPStatus(errors.New("connection refused")))
		assert.Equal(t, 0, crawl.HTTPStatus(nil))
	})
}

func TestScraperRetries(t *testing.T) {
	t.Parallel()

	t.Run("retries transport failures until success", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0

		runs, _ := newRunServiceMock()
		scraper := &crawl.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					if attempts < 3 {
						return "", errors.New("connection reset")
					}
					return okPage, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html, detailURL string) (*cellscan.Cell, error) {
					name := "OK Cell"
					return &cellscan.Cell{Slug: "ok-cell", Name: &name, DetailURL: detailURL}, nil
				},
			},
			Cells: &mock.CellService{
				UpsertCellFn: func(ctx context.Context, cell *cellscan.Cell) error { return nil },
			},
			Runs:        runs,
			RetryDelays: []time.Duration{0, 0, 0},
		}

		run, err := scraper.Run(context.Background(), []string{"https://example.com/ok-cell/"}, "urls.txt", nil)
		require.NoError(t, err)

		assert.Equal(t, 3, attempts)
		assert.Equal(t, 1, run.SuccessCount)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0

		runs, _ := newRunServiceMock()
		scraper := &crawl.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					return "", &cellhttp.StatusError{StatusCode: 404, URL: url}
				},
			},
			Extractor:   &mock.Extractor{},
			Cells:       &mock.CellService{},
			Runs:        runs,
			RetryDelays: []time.Duration{0, 0, 0},
		}

		run, err := scraper.Run(context.Background(), []string{"https://example.com/gone/"}, "urls.txt", nil)
		require.NoError(t, err)

		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, run.HTTPErrorCount)
	})

	t.Run("gives up after exhausting the delays", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0

		runs, _ := newRunServiceMock()
		scraper := &crawl.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					return "", errors.New("connection reset")
				},
			},
			Extractor:   &mock.Extractor{},
			Cells:       &mock.CellService{},
			Runs:        runs,
			RetryDelays: []time.Duration{0, 0},
		}

		run, err := scraper.Run(context.Background(), []string{"https://example.com/flaky/"}, "urls.txt", nil)
		require.NoError(t, err)

		assert.Equal(t, 3, attempts)
		assert.Equal(t, 1, run.HTTPErrorCount)
	})

	t.Run("default delays are exponential", func(t *testing.T) {
		t.Parallel()

		delays := crawl.DefaultRetryDelays()

		require.Len(t, delays, 3)
		assert.Equal(t, 1*time.Second, delays[0])
		assert.Equal(t, 2*time.Second, delays[1])
		assert.Equal(t, 4*time.Second, delays[2])
	})
}
