package party

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// IDSlice is a sorted list of distinct party IDs.
type IDSlice []ID

// NewIDSlice returns a sorted copy of partyIDs.
func NewIDSlice(partyIDs []ID) IDSlice {
	ids := IDSlice(append([]ID(nil), partyIDs...))
	ids.sort()
	return ids
}

func (partyIDs IDSlice) Len() int           { return len(partyIDs) }
func (partyIDs IDSlice) Less(i, j int) bool { return partyIDs[i] < partyIDs[j] }
func (partyIDs IDSlice) Swap(i, j int)      { partyIDs[i], partyIDs[j] = partyIDs[j], partyIDs[i] }

func (partyIDs IDSlice) sort() { sort.Sort(partyIDs) }

// Valid returns nil if partyIDs is sorted and contains no duplicates or empty IDs.
func (partyIDs IDSlice) Valid() error {
	for i, id := range partyIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if i > 0 && partyIDs[i-1] >= id {
			return fmt.Errorf("party.IDSlice: %q appears out of order or twice", id)
		}
	}
	return nil
}

// Contains returns true if partyIDs contains all of the given ids.
// Assumes that partyIDs is sorted.
func (partyIDs IDSlice) Contains(ids ...ID) bool {
	for _, id := range ids {
		if _, ok := partyIDs.search(id); !ok {
			return false
		}
	}
	return true
}

// Remove returns a new sorted slice without the given id.
func (partyIDs IDSlice) Remove(id ID) IDSlice {
	result := make(IDSlice, 0, len(partyIDs))
	for _, other := range partyIDs {
		if other != id {
			result = append(result, other)
		}
	}
	return result
}

func (partyIDs IDSlice) search(x ID) (int, bool) {
	index := sort.Search(len(partyIDs), func(i int) bool { return partyIDs[i] >= x })
	if index < len(partyIDs) && partyIDs[index] == x {
		return index, true
	}
	return 0, false
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
//
// Each ID is prefixed by its length so that the encoding is unambiguous.
func (partyIDs IDSlice) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, uint64(len(partyIDs))); err != nil {
		return 0, err
	}
	nAll := int64(8)
	for _, id := range partyIDs {
		if err := binary.Write(w, binary.BigEndian, uint64(len(id))); err != nil {
			return nAll, err
		}
		nAll += 8
		n, err := w.Write([]byte(id))
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (IDSlice) Domain() string {
	return "IDSlice"
}
