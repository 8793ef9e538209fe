// Package hash computes the 64-bit identifiers used to match signal names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a signal name.
//
// Names are hashed as given; callers lowercase them first when matching against
// header signal names, which are stored lowercased.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
