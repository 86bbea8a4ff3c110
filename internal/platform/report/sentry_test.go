package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureErrorWithoutDSNIsNoop(t *testing.T) {
	require.NoError(t, Setup("", "testing"))

	CaptureError(context.Background(), "test", errors.New("boom"))
	CaptureError(context.Background(), "test", nil)
	Flush()
}
