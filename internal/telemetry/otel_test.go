package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "test-service")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported, shutdown has no spans to flush.
	shutdown, err := Setup(context.Background(), "http://192.0.2.1:4318", "test-service")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
