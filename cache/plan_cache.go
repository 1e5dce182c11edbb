// Package cache holds the compiled-plan cache. Plan fingerprints cover both
// structure and bound literals, so a hit returns exactly the SQL and argument
// list the plan would compile to.
package cache

import lru "github.com/hashicorp/golang-lru/v2"

// CompiledQuery is the deterministic output of compiling one plan.
type CompiledQuery struct {
	SQL  string
	Args []any
}

type PlanCache interface {
	Get(fingerprint uint64) (*CompiledQuery, bool)
	Set(fingerprint uint64, q *CompiledQuery)
}

type lruPlanCache struct {
	entries *lru.Cache[uint64, *CompiledQuery]
}

const defaultPlanCacheSize = 1024

// NewPlanCache returns an LRU-bounded cache. size <= 0 selects the default.
func NewPlanCache(size int) PlanCache {
	if size <= 0 {
		size = defaultPlanCacheSize
	}
	entries, err := lru.New[uint64, *CompiledQuery](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &lruPlanCache{entries: entries}
}

func (c *lruPlanCache) Get(fingerprint uint64) (*CompiledQuery, bool) {
	return c.entries.Get(fingerprint)
}

func (c *lruPlanCache) Set(fingerprint uint64, q *CompiledQuery) {
	c.entries.Add(fingerprint, q)
}
