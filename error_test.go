package cellscan_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/cellscan"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", cellscan.ErrorCode(nil))
	})

	t.Run("returns the code of an application error", func(t *testing.T) {
		t.Parallel()

		err := cellscan.Errorf(cellscan.ENOTFOUND, "cell %q not found", "lg-hg2")

		assert.Equal(t, cellscan.ENOTFOUND, cellscan.ErrorCode(err))
	})

	t.Run("unwraps a wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("upsert: %w", cellscan.Errorf(cellscan.EINVALID, "cell slug required"))

		assert.Equal(t, cellscan.EINVALID, cellscan.ErrorCode(err))
	})

	t.Run("returns internal for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cellscan.EINTERNAL, cellscan.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", cellscan.ErrorMessage(nil))
	})

	t.Run("returns the message of an application error", func(t *testing.T) {
		t.Parallel()

		err := cellscan.Errorf(cellscan.EUNPROCESSABLE, "cell name and slug not found")

		assert.Equal(t, "cell name and slug not found", cellscan.ErrorMessage(err))
	})

	t.Run("returns a generic message for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", cellscan.ErrorMessage(errors.New("boom")))
	})
}
