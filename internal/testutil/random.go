// Package testutil provides randomized input generators for property
// tests.
package testutil

import (
	"math/rand"
	"time"

	"github.com/dolthub/maphash"
)

// seedHasher turns an arbitrary string key into an int64 seed. The hasher
// draws a random seed of its own once per process, so a key maps to the
// same seed within one run of the test binary but not across runs.
var seedHasher = maphash.NewHasher[string]()

// SeededRand returns a *rand.Rand derived from key. Within one process the
// same key yields the same sequence; a new process yields a different
// sequence for the same key.
func SeededRand(key string) *rand.Rand {
	return rand.New(rand.NewSource(int64(seedHasher.Hash(key))))
}

// GenerateRandomInts generates a slice of 'count' random integers, each in
// the range [0, maxVal), using a fresh time-seeded source.
func GenerateRandomInts(count int, maxVal int) []int {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	nums := make([]int, count)

	for i := range nums {
		nums[i] = rng.Intn(maxVal)
	}

	return nums
}
