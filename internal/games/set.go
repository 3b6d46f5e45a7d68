package games

import (
	"sort"
	"strconv"
)

// ID is the platform-wide numeric identifier of a game (Steam appid).
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Set is an unordered collection of unique game IDs.
type Set map[ID]struct{}

// NewSet builds a set from the supplied IDs. Duplicates collapse.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s Set) Add(id ID) {
	s[id] = struct{}{}
}

// Contains reports whether id is a member of the set.
func (s Set) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Intersect returns a new set holding the IDs present in both s and other.
// Neither input is modified.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for id := range small {
		if large.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same IDs.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
