package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSimulation(t *testing.T) {
	before := testutil.ToFloat64(SimulationsTotal.WithLabelValues(OutcomeOK, "test"))
	ObserveSimulation("test", OutcomeOK, time.Millisecond)
	ObserveSimulation("test", OutcomeOK, time.Millisecond)
	after := testutil.ToFloat64(SimulationsTotal.WithLabelValues(OutcomeOK, "test"))

	assert.Equal(t, 2.0, after-before)
}

func TestObserveSimulation_InvalidRequestCounted(t *testing.T) {
	c := SimulationsTotal.WithLabelValues(OutcomeInvalidRequest, "test")
	before := testutil.ToFloat64(c)
	ObserveSimulation("test", OutcomeInvalidRequest, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(c)-before)
}
