package quiz

import "math/rand"

// Rand is the randomness the sampler needs. *rand.Rand satisfies it; the
// default draws from math/rand's process-wide, goroutine-safe source.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// SelectForAttempt picks min(maxCount, len(all)) questions uniformly without
// replacement and strips their answers. all is not modified. maxCount <= 0
// means DefaultMaxQuestions.
func SelectForAttempt(all []Question, maxCount int, r Rand) ([]DeliveredQuestion, error) {
	if len(all) == 0 {
		return nil, ErrNoQuestionsAvailable
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxQuestions
	}
	if r == nil {
		r = globalRand{}
	}
	n := min(maxCount, len(all))

	// partial Fisher-Yates over indices
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	out := make([]DeliveredQuestion, n)
	for i := 0; i < n; i++ {
		out[i] = all[idx[i]].Deliver()
	}
	return out, nil
}
