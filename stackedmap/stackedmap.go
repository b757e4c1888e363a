// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

// StackedMap maintains maps in a stack.
// It acts as a map with save-restore/snapshot-revert manner.
//
// Besides the latest value, it keeps the value every level put for a key, so
// callers can rebuild a derived view of one key after popping levels without
// visiting the keys that were not touched.
type StackedMap[K comparable, V any] struct {
	levels    []map[K]V
	revisions map[K][]int
}

// New create an instance of StackedMap.
func New[K comparable, V any]() *StackedMap[K, V] {
	return &StackedMap[K, V]{
		revisions: make(map[K][]int),
	}
}

// Depth returns depth of stack.
func (sm *StackedMap[K, V]) Depth() int {
	return len(sm.levels)
}

// Len returns the count of distinct keys put in all levels.
func (sm *StackedMap[K, V]) Len() int {
	return len(sm.revisions)
}

// Push pushes a new map on stack.
// It returns stack depth before push.
func (sm *StackedMap[K, V]) Push() int {
	sm.levels = append(sm.levels, make(map[K]V))
	return len(sm.levels) - 1
}

// Pop pop the map at top of stack.
// It will revert all Put operations since last Push, and returns the keys
// that were put in the popped level.
func (sm *StackedMap[K, V]) Pop() []K {
	top := sm.levels[len(sm.levels)-1]
	keys := make([]K, 0, len(top))
	for key := range top {
		revs := sm.revisions[key]
		revs = revs[:len(revs)-1]
		if len(revs) == 0 {
			delete(sm.revisions, key)
		} else {
			sm.revisions[key] = revs
		}
		keys = append(keys, key)
	}
	sm.levels[len(sm.levels)-1] = nil
	sm.levels = sm.levels[:len(sm.levels)-1]
	return keys
}

// PopTo pop maps until stack depth reaches depth.
// It returns the distinct keys put in all popped levels.
func (sm *StackedMap[K, V]) PopTo(depth int) []K {
	seen := make(map[K]struct{})
	var keys []K
	for len(sm.levels) > depth {
		for _, key := range sm.Pop() {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Put puts key value into map at stack top.
// It will panic if stack is empty.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	rev := len(sm.levels) - 1
	sm.levels[rev][key] = value

	// records key revision for fast access
	revs := sm.revisions[key]
	if len(revs) == 0 || revs[len(revs)-1] != rev {
		sm.revisions[key] = append(revs, rev)
	}
}

// Revisions returns the values of key, one per level that put it, from the
// bottom of the stack to the top.
func (sm *StackedMap[K, V]) Revisions(key K) []V {
	revs := sm.revisions[key]
	values := make([]V, 0, len(revs))
	for _, rev := range revs {
		values = append(values, sm.levels[rev][key])
	}
	return values
}
