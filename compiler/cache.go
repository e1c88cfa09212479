package compiler

import (
	lru "github.com/hashicorp/golang-lru/v2"

	. "tlua/binchunk"
)

// Cache memoizes compiled prototypes by source file path, so a module
// required more than once in a run is parsed and code-generated only
// the first time.
type Cache struct {
	lru *lru.Cache[string, *Prototype]
}

func NewCache(size int) *Cache {
	l, err := lru.New[string, *Prototype](size)
	if err != nil {
		panic(err)
	}
	return &Cache{lru: l}
}

// CompileCached compiles source under key, reusing a previous compilation
// of the same key if one is cached. chunkName is only used on a miss.
func (c *Cache) CompileCached(key, source, chunkName string) *Prototype {
	if proto, ok := c.lru.Get(key); ok {
		return proto
	}
	proto := Compile(source, chunkName)
	c.lru.Add(key, proto)
	return proto
}
