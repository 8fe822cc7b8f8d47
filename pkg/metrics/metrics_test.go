package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	DocumentFailures.WithLabelValues("io").Inc()
	require.GreaterOrEqual(t, testutil.ToFloat64(DocumentFailures.WithLabelValues("io")), 1.0)

	n, err := testutil.GatherAndCount(reg, "crm_documents_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// second registration on the same registry must fail
	require.Panics(t, func() { RegisterCollectors(reg) })
}
