package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Shuffle performs a Fisher-Yates shuffle of n elements using the generator
func Shuffle(g Generator, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		swap(i, j)
	}
}

// Pick returns a random element of the slice
func Pick(g Generator, options []int) int {
	return options[g.Intn(len(options))]
}
