package parallel

import "errors"

// Partition errors.
var (
	// ErrInvalidChunkCount is returned when the chunk count or item count is not positive.
	ErrInvalidChunkCount = errors.New("parallel: chunk and item counts must be positive")

	// ErrUnevenPartition is returned when the chunk count does not divide the item count.
	ErrUnevenPartition = errors.New("parallel: chunk count must evenly divide the item count")
)

// Span is a half-open range [Start, End) of linear item indices owned by
// exactly one chunk.
type Span struct {
	// Index is the chunk number, 0-based.
	Index int

	// Start is the first item index in the chunk.
	Start int

	// End is one past the last item index in the chunk.
	End int
}

// Len returns the number of items in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Partition splits [0, total) into chunks contiguous spans of equal length.
//
// The spans are returned in index order, do not overlap, and their union is
// exactly [0, total). Partition refuses chunk counts that do not divide total
// instead of producing a ragged last chunk.
func Partition(total, chunks int) ([]Span, error) {
	if total <= 0 || chunks <= 0 {
		return nil, ErrInvalidChunkCount
	}
	if total%chunks != 0 {
		return nil, ErrUnevenPartition
	}

	size := total / chunks
	spans := make([]Span, chunks)
	for i := range spans {
		spans[i] = Span{Index: i, Start: i * size, End: (i + 1) * size}
	}
	return spans, nil
}
