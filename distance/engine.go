package distance

// Matcher decides whether a single word matches a query term.
type Matcher interface {
	// Match reports whether word is within threshold of term.
	// Implementations that ignore the threshold document so.
	Match(word, term string, threshold int) (bool, error)
}

// Engine owns the scratch state used by the distance metrics and hands out
// matchers bound to it.
type Engine struct {
	scratch *Scratch
	closed  bool

	levenshtein levenshteinMatcher
	hamming     hammingMatcher
	bruteForce  bruteForceMatcher
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	maxScratchCells int
}

// WithMaxScratchCells caps the size of the Levenshtein scratch table.
// Default is 0 (unlimited).
func WithMaxScratchCells(cells int) Option {
	return func(o *engineOptions) {
		o.maxScratchCells = cells
	}
}

// NewEngine creates an engine with its own scratch table.
func NewEngine(opts ...Option) *Engine {
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{
		scratch: NewScratch(options.maxScratchCells),
	}
	e.levenshtein = levenshteinMatcher{scratch: e.scratch}
	return e
}

// Matcher returns the matcher for the given metric.
func (e *Engine) Matcher(metric Metric) (Matcher, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	switch metric {
	case Levenshtein:
		return &e.levenshtein, nil
	case Hamming:
		return &e.hamming, nil
	case BruteForce:
		return &e.bruteForce, nil
	default:
		return nil, metric.Validate()
	}
}

// Scratch exposes the engine's scratch table.
func (e *Engine) Scratch() *Scratch {
	return e.scratch
}

// Close releases the scratch table. It is safe to call Close more than once.
func (e *Engine) Close() error {
	e.scratch.Release()
	e.closed = true
	return nil
}

type levenshteinMatcher struct {
	scratch *Scratch
}

var _ Matcher = (*levenshteinMatcher)(nil)

func (m *levenshteinMatcher) Match(word, term string, threshold int) (bool, error) {
	if threshold < 0 {
		return false, nil
	}
	// The distance is at least the length difference, skip the table when
	// that alone rules the word out.
	if abs(len(word)-len(term)) > threshold {
		return false, nil
	}
	d, err := LevenshteinDistance(m.scratch, word, term)
	if err != nil {
		return false, err
	}
	return d <= threshold, nil
}

type hammingMatcher struct{}

var _ Matcher = (*hammingMatcher)(nil)

func (hammingMatcher) Match(word, term string, threshold int) (bool, error) {
	if threshold < 0 {
		return false, nil
	}
	return HammingDistance(word, term) <= threshold, nil
}

// bruteForceMatcher ignores the threshold.
type bruteForceMatcher struct{}

var _ Matcher = (*bruteForceMatcher)(nil)

func (bruteForceMatcher) Match(word, term string, _ int) (bool, error) {
	return Contains(word, term), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
