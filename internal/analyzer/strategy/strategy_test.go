package strategy

import (
	"testing"

	"golang-filing-sentiment/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}
