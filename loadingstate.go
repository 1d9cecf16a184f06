package main

import "slices"

// loadingState tracks which startup loads have finished.
type loadingState map[string]bool

func newLoadingState(keys ...string) loadingState {
	l := make(loadingState, len(keys))
	for _, k := range keys {
		l[k] = false
	}
	return l
}

func (l loadingState) set(key string) {
	l[key] = true
}

// allLoaded reports whether every key is loaded. When not, it also returns
// the first pending key in sorted order.
func (l loadingState) allLoaded() (bool, string) {
	var pending []string
	for k, v := range l {
		if !v {
			pending = append(pending, k)
		}
	}

	if len(pending) == 0 {
		return true, ""
	}

	slices.Sort(pending)
	return false, pending[0]
}
