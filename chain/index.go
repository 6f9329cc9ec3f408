package chain

import (
	"github.com/wattx-core/consensus/algorithm"
	"github.com/wattx-core/consensus/types"
)

// Entry Per-block index record: everything difficulty retargeting needs,
// nothing more.
type Entry struct {
	Hash    types.Hash
	Height  uint64
	Version int32
	Time    uint32
	Bits    uint32
}

func (e *Entry) Algorithm() algorithm.Algorithm {
	return algorithm.FromVersion(e.Version)
}

// Index Append-only arena of main chain entries, indexed by height.
// Validators only read it, so concurrent reads during validation need no
// locking; appends happen on the single chain acceptance path.
type Index struct {
	entries []Entry
	byHash  map[types.Hash]uint64
}

func NewIndex() *Index {
	return &Index{
		byHash: make(map[types.Hash]uint64),
	}
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

// Tip Highest entry, or nil on an empty index.
func (ix *Index) Tip() *Entry {
	if len(ix.entries) == 0 {
		return nil
	}
	return &ix.entries[len(ix.entries)-1]
}

func (ix *Index) AtHeight(height uint64) *Entry {
	if height >= uint64(len(ix.entries)) {
		return nil
	}
	return &ix.entries[height]
}

func (ix *Index) ByHash(hash types.Hash) *Entry {
	if height, ok := ix.byHash[hash]; ok {
		return &ix.entries[height]
	}
	return nil
}

// Append Adds the next main chain entry. Heights must be contiguous.
func (ix *Index) Append(e Entry) bool {
	if e.Height != uint64(len(ix.entries)) {
		return false
	}
	ix.entries = append(ix.entries, e)
	ix.byHash[e.Hash] = e.Height
	return true
}

// LastForAlgorithm Walks backward from the entry at from (inclusive) to
// the most recent entry mined with algo. Bounded iteration over the
// arena, worst case the full index.
func (ix *Index) LastForAlgorithm(from uint64, algo algorithm.Algorithm) *Entry {
	if len(ix.entries) == 0 {
		return nil
	}
	if from >= uint64(len(ix.entries)) {
		from = uint64(len(ix.entries)) - 1
	}
	for h := int64(from); h >= 0; h-- {
		if ix.entries[h].Algorithm() == algo {
			return &ix.entries[h]
		}
	}
	return nil
}

// PrevForAlgorithm The same-algorithm entry strictly before the entry at
// height, or nil.
func (ix *Index) PrevForAlgorithm(height uint64, algo algorithm.Algorithm) *Entry {
	if height == 0 {
		return nil
	}
	return ix.LastForAlgorithm(height-1, algo)
}

// CountForAlgorithm Number of algo entries among the lookback entries
// ending at from (inclusive).
func (ix *Index) CountForAlgorithm(from uint64, lookback int, algo algorithm.Algorithm) (count int) {
	if len(ix.entries) == 0 || lookback <= 0 {
		return 0
	}
	if from >= uint64(len(ix.entries)) {
		from = uint64(len(ix.entries)) - 1
	}
	for h, checked := int64(from), 0; h >= 0 && checked < lookback; h, checked = h-1, checked+1 {
		if ix.entries[h].Algorithm() == algo {
			count++
		}
	}
	return count
}

// AverageSpacingForAlgorithm Mean seconds between the last lookback+1
// same-algorithm blocks ending at from. Zero when fewer than two exist.
func (ix *Index) AverageSpacingForAlgorithm(from uint64, lookback int, algo algorithm.Algorithm) int64 {
	if len(ix.entries) == 0 {
		return 0
	}
	if from >= uint64(len(ix.entries)) {
		from = uint64(len(ix.entries)) - 1
	}

	var times []int64
	for h := int64(from); h >= 0 && len(times) < lookback+1; h-- {
		if ix.entries[h].Algorithm() == algo {
			times = append(times, int64(ix.entries[h].Time))
		}
	}

	if len(times) < 2 {
		return 0
	}

	total := times[0] - times[len(times)-1]
	return total / int64(len(times)-1)
}
