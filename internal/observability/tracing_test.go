package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName: "agora-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestRecordError_ToleratesBareContext(t *testing.T) {
	// No span in the context; both calls must be safe no-ops.
	RecordError(context.Background(), nil)
	RecordError(context.Background(), errors.New("boom"))
}
