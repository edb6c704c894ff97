// Package prime provides prime number selection for table sizing.
//
// Open-addressing tables use prime capacities so that any stride below
// the capacity is coprime to it and the probe sequence visits every slot.
package prime

// MinTableSize is the smallest capacity this package will hand out.
const MinTableSize = 2

// IsPrime reports whether n is prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	if n%3 == 0 {
		return n == 3
	}
	for i := uint64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Next returns the smallest prime >= n, never less than MinTableSize.
func Next(n uint64) uint64 {
	if n < MinTableSize {
		return MinTableSize
	}
	for !IsPrime(n) {
		n++
	}
	return n
}
