package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(CommentsProcessed.WithLabelValues("vote_recorded"))
	CommentsProcessed.WithLabelValues("vote_recorded").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CommentsProcessed.WithLabelValues("vote_recorded")))

	before = testutil.ToFloat64(EligibilityChecks.WithLabelValues("whitelist", "cached"))
	EligibilityChecks.WithLabelValues("whitelist", "cached").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(EligibilityChecks.WithLabelValues("whitelist", "cached")))

	before = testutil.ToFloat64(StoreSaves)
	StoreSaves.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(StoreSaves))
}
