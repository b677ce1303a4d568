package dedupe

// defaultMaxSize bounds the seen-key cache; both games together produce a
// few hundred draws a year, so this covers decades of history.
const defaultMaxSize = 50000

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets the maximum number of keys kept in memory. Zero or
// negative disables eviction.
func WithMaxSize(size int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = size
	}
}
