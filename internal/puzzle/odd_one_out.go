package puzzle

import (
	"strconv"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

const (
	oddMin = 10
	oddMax = 60
)

type property struct {
	name  string
	holds func(n int) bool
}

var properties = []property{
	{"even", func(n int) bool { return n%2 == 0 }},
	{"odd", func(n int) bool { return n%2 != 0 }},
	{"divisible by 3", func(n int) bool { return n%3 == 0 }},
	{"divisible by 5", func(n int) bool { return n%5 == 0 }},
}

// OddOneOut picks a property, three distinct numbers in [10,60] that have
// it and one that does not, and asks for the one that does not belong.
func (g *Generator) OddOneOut() quiz.Question {
	q, _ := g.oddOneOut(properties[g.rng.Intn(len(properties))])
	return q
}

// oddOneOut also returns the violating number, for tests.
func (g *Generator) oddOneOut(p property) (quiz.Question, int) {
	var fits, misfits []int
	for n := oddMin; n <= oddMax; n++ {
		if p.holds(n) {
			fits = append(fits, n)
		} else {
			misfits = append(misfits, n)
		}
	}
	g.rng.Shuffle(len(fits), func(i, j int) { fits[i], fits[j] = fits[j], fits[i] })
	violator := misfits[g.rng.Intn(len(misfits))]

	nums := append(append([]int(nil), fits[:quiz.ChoiceCount-1]...), violator)
	g.rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })

	choices := make([]string, len(nums))
	answer := 0
	for i, n := range nums {
		choices[i] = strconv.Itoa(n)
		if n == violator {
			answer = i
		}
	}
	return quiz.Question{
		Prompt:      "Which number does not belong with the others?",
		Choices:     choices,
		AnswerIndex: answer,
	}, violator
}
