package profiling

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()
	stop := Track("a")
	time.Sleep(2 * time.Millisecond)
	stop()
	Track("a")()
	Track("b")()

	ss := Snapshot()
	require.Len(t, ss, 2)
	assert.GreaterOrEqual(t, ss["a"], 2*time.Millisecond)

	Reset()
	assert.Empty(t, Snapshot())
}

func TestTopNOrdering(t *testing.T) {
	Reset()
	mu.Lock()
	runTotals["slow"] = 4200 * time.Microsecond
	runTotals["fast"] = 2 * time.Millisecond
	runTotals["also-fast"] = 2 * time.Millisecond
	mu.Unlock()
	defer Reset()

	assert.Equal(t, "slow:4.2ms, also-fast:2ms, fast:2ms", TopN(5))
	assert.Equal(t, "slow:4.2ms", TopN(1))
	assert.Equal(t, "", TopN(0))
}

func TestHistogramAndTextfile(t *testing.T) {
	Track("profiling.test")()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(stageDuration), 1)

	path := filepath.Join(t.TempDir(), "planetgen.prom")
	require.NoError(t, WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `planetgen_stage_duration_seconds_count{stage="profiling.test"}`))
}
