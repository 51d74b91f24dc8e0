package collation

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator wraps an x/text collator behind a mutex because collate.Collator
// keeps an internal buffer and is not safe for concurrent use.
type Comparator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewTurkish builds the comparator used for all user-facing string ordering:
// Turkish collation rules, case/diacritic-insensitive, numeric-aware so that
// "Model 2" sorts before "Model 10".
func NewTurkish() *Comparator {
	return &Comparator{
		c: collate.New(language.Turkish, collate.Loose, collate.Numeric),
	}
}

// Compare returns -1, 0 or 1 following the usual comparator contract.
func (cmp *Comparator) Compare(a, b string) int {
	cmp.mu.Lock()
	defer cmp.mu.Unlock()
	return cmp.c.CompareString(a, b)
}
