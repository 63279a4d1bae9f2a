package search

import (
	"testing"

	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCorpus = []string{
	"the kitten sleeps",
	"a fluffy fuzzy cat",
	"completely unrelated text",
}

// recordingMonitor captures the monitor callbacks of a scan.
type recordingMonitor struct {
	started  int
	total    int
	matched  []int
	finished int
	lastErr  error
	result   *core.MatchResultSet
}

func (m *recordingMonitor) Start(_ string, _ distance.Metric, _ int, total int) {
	m.started++
	m.total = total
}

func (m *recordingMonitor) RecordMatched(index int, _ int) {
	m.matched = append(m.matched, index)
}

func (m *recordingMonitor) Finish(result *core.MatchResultSet, err error) {
	m.finished++
	m.result = result
	m.lastErr = err
}

func newTestScanner(t *testing.T, engineOpts []distance.Option, opts ...Option) *Scanner {
	t.Helper()
	engine := distance.NewEngine(engineOpts...)
	t.Cleanup(func() { engine.Close() })

	scanner, err := NewScanner(engine, opts...)
	require.NoError(t, err)
	return scanner
}

func TestNewScanner(t *testing.T) {
	_, err := NewScanner(nil)
	assert.ErrorIs(t, err, ErrEngineRequired)

	engine := distance.NewEngine()
	defer engine.Close()
	_, err = NewScanner(engine, WithMaxMatches(-1))
	assert.Error(t, err)

	s, err := NewScanner(engine, WithLogger(nil), WithMonitor(nil))
	require.NoError(t, err)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.monitor)
}

func TestScan_Scenarios(t *testing.T) {
	s := newTestScanner(t, nil)

	tests := []struct {
		name      string
		corpus    []string
		term      string
		threshold int
		metric    distance.Metric
		expected  []int
	}{
		{"levenshtein exact word", sampleCorpus, "fuzzy", 1, distance.Levenshtein, []int{1}},
		{"levenshtein one edit", sampleCorpus, "fluzzy", 1, distance.Levenshtein, []int{1}},
		{"levenshtein wide threshold", sampleCorpus, "kitten", 6, distance.Levenshtein, []int{0, 1, 2}},
		{"hamming", sampleCorpus, "kitten", 0, distance.Hamming, []int{0}},
		{"brute force", []string{"kitten", "kittens", "sitting"}, "kitten", 0, distance.BruteForce, []int{0, 1}},
		{"brute force ignores threshold", []string{"kitten", "kittens", "sitting"}, "kitten", 99, distance.BruteForce, []int{0, 1}},
		{"no match", sampleCorpus, "zebra", 1, distance.Levenshtein, []int{}},
		{"empty corpus", []string{}, "fuzzy", 1, distance.Levenshtein, []int{}},
		{"nil corpus", nil, "fuzzy", 1, distance.Levenshtein, []int{}},
		{"empty term", sampleCorpus, "", 10, distance.Levenshtein, []int{}},
		{"empty records", []string{"", "  ", "fuzzy"}, "fuzzy", 0, distance.Levenshtein, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Scan(tt.corpus, tt.term, tt.threshold, tt.metric)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Indices)
			assert.Equal(t, len(result.Indices), cap(result.Indices))
			assert.Equal(t, tt.term, result.Term)
			assert.Equal(t, tt.metric.String(), result.Metric)
			assert.Equal(t, tt.threshold, result.Threshold)
		})
	}
}

func TestScan_AgreesWithMatchRecord(t *testing.T) {
	s := newTestScanner(t, nil)
	corpus := append([]string{}, sampleCorpus...)
	corpus = append(corpus, "kitten sitting mitten", "fizzy fuzz", "FUZZY", "the cat")

	for _, metric := range distance.Metrics() {
		m, err := s.engine.Matcher(metric)
		require.NoError(t, err)

		for _, term := range []string{"fuzzy", "kitten", "cat", "the"} {
			for threshold := 0; threshold <= 3; threshold++ {
				result, err := s.Scan(corpus, term, threshold, metric)
				require.NoError(t, err)

				var expected []int
				for i, record := range corpus {
					hits, err := MatchRecord(record, term, threshold, m)
					require.NoError(t, err)
					if hits > 0 {
						expected = append(expected, i)
					}
				}
				if expected == nil {
					expected = []int{}
				}
				assert.Equal(t, expected, result.Indices, "%s %q %d", metric, term, threshold)
				assert.IsIncreasing(t, result.Indices)
			}
		}
	}
}

func TestScan_ResultCapacity(t *testing.T) {
	s := newTestScanner(t, nil, WithMaxMatches(1))

	result, err := s.Scan([]string{"kitten", "kittens", "sitting"}, "kitten", 0, distance.BruteForce)
	assert.ErrorIs(t, err, ErrResultCapacity)
	assert.Empty(t, result.Indices)

	// Exactly at the cap is fine.
	result, err = s.Scan(sampleCorpus, "fuzzy", 1, distance.Levenshtein)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Indices)
}

func TestScan_ScratchLimit(t *testing.T) {
	s := newTestScanner(t, []distance.Option{distance.WithMaxScratchCells(10)})

	result, err := s.Scan(sampleCorpus, "fuzzy", 1, distance.Levenshtein)
	assert.ErrorIs(t, err, distance.ErrScratchLimit)
	assert.Empty(t, result.Indices)

	// Metrics without a table still work on the same engine.
	result, err = s.Scan(sampleCorpus, "fuzzy", 0, distance.BruteForce)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Indices)
}

func TestScan_UnknownMetric(t *testing.T) {
	s := newTestScanner(t, nil)

	result, err := s.Scan(sampleCorpus, "fuzzy", 1, distance.Metric(0))
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
	assert.Empty(t, result.Indices)
}

func TestScan_Monitor(t *testing.T) {
	monitor := &recordingMonitor{}
	s := newTestScanner(t, nil, WithMonitor(monitor))

	result, err := s.Scan([]string{"kitten", "kittens", "sitting"}, "kitten", 0, distance.BruteForce)
	require.NoError(t, err)

	assert.Equal(t, 1, monitor.started)
	assert.Equal(t, 3, monitor.total)
	assert.Equal(t, []int{0, 1}, monitor.matched)
	assert.Equal(t, 1, monitor.finished)
	assert.NoError(t, monitor.lastErr)
	assert.Same(t, result, monitor.result)

	_, err = s.Scan(sampleCorpus, "fuzzy", 1, distance.Metric(7))
	require.Error(t, err)
	assert.Equal(t, 2, monitor.finished)
	assert.ErrorIs(t, monitor.lastErr, distance.ErrUnknownMetric)
}

func TestScan_ReusesEngineAcrossScans(t *testing.T) {
	s := newTestScanner(t, nil)

	long := "a supercalifragilisticexpialidocious word"
	_, err := s.Scan([]string{long}, "supercalifragilisticexpialidocious", 2, distance.Levenshtein)
	require.NoError(t, err)
	grows := s.engine.Scratch().Grows()

	result, err := s.Scan(sampleCorpus, "fluzzy", 1, distance.Levenshtein)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Indices)
	assert.Equal(t, grows, s.engine.Scratch().Grows())
}
