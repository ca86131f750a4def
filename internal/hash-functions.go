package internal

// StringHash returns a hash value for the given string value.
func StringHash(s string) (hash uint64) {
	// DJBX33A
	hash = 5381
	for _, b := range s {
		hash = ((hash << 5) + hash) + uint64(b)
	}
	return
}

// Fold32 folds a 64-bit hash value into 32 bits.
func Fold32(hash uint64) uint32 {
	return uint32(hash>>32) ^ uint32(hash)
}
