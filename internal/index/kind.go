package index

// Kind classifies an entry for display and sorting, mirroring dug's
// entry.Kind but collapsed to what a single walk can tell without a
// rollup: there is no "has children" aggregate, only the entry itself.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindOther
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindOther:
		return "other"
	case KindError:
		return "error"
	default:
		return "file"
	}
}
