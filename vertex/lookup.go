package vertex

import "github.com/gogpu/spline/internal/cache"

// decoders caches one Decoder per vertex type (index bits cleared).
var decoders = cache.New[Type, *Decoder](64)

// Lookup returns the shared decoder for t, creating it on first use.
func Lookup(t Type) (*Decoder, error) {
	key := t.WithoutIndex()
	return decoders.GetOrCreate(key, func() (*Decoder, error) {
		return NewDecoder(key)
	})
}

// CacheStats reports usage of the shared decoder cache.
func CacheStats() cache.Stats {
	return decoders.Stats()
}
