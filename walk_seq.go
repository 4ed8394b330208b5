package parawalk

import "iter"

// Seq consumes the builder and returns a range-over-func sequence,
// for callers who'd rather write `for entry, err := range w.Seq()`
// than drive Next by hand. It is sugar over Iter; the two share the
// same ordering and blocking contract.
func (w *Walk) Seq() iter.Seq2[DirEntry, error] {
	it := w.Iter()
	return func(yield func(DirEntry, error) bool) {
		for {
			res, ok := it.Next()
			if !ok {
				return
			}
			if !yield(res.Value, res.Err) {
				return
			}
		}
	}
}
