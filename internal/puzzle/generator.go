// Package puzzle builds synthetic multiple-choice questions from four
// numeric templates: arithmetic, geometric and Fibonacci-like sequences,
// and odd-one-out sets. It does no I/O.
package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

// Rand is the randomness a Generator draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) Intn(n int) int                     { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Generator produces questions. Generators from New are safe for
// concurrent use; seeded ones are not, since *rand.Rand is not.
type Generator struct {
	rng Rand
}

// New draws from the process-wide random source.
func New() *Generator {
	return &Generator{rng: globalRand{}}
}

// NewWithSeed is reproducible: the same seed yields the same questions.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewWithRand uses r for every draw.
func NewWithRand(r Rand) *Generator {
	return &Generator{rng: r}
}

// Template names, in the order GenerateBatch picks among them.
const (
	TemplateArithmetic = "arithmetic"
	TemplateGeometric  = "geometric"
	TemplateFibonacci  = "fibonacci"
	TemplateOddOneOut  = "odd_one_out"
)

var templateNames = []string{TemplateArithmetic, TemplateGeometric, TemplateFibonacci, TemplateOddOneOut}

// Templates lists the available template names.
func Templates() []string {
	return append([]string(nil), templateNames...)
}

// Generate builds one question from the named template.
func (g *Generator) Generate(template string) (quiz.Question, error) {
	switch template {
	case TemplateArithmetic:
		return g.Arithmetic(), nil
	case TemplateGeometric:
		return g.Geometric(), nil
	case TemplateFibonacci:
		return g.Fibonacci(), nil
	case TemplateOddOneOut:
		return g.OddOneOut(), nil
	default:
		return quiz.Question{}, fmt.Errorf("unknown template %q", template)
	}
}

// GenerateBatch returns n questions, each from a uniformly chosen template.
// Nothing prevents two items in a batch from being identical.
func (g *Generator) GenerateBatch(n int) []quiz.Question {
	build := g.builders()
	out := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, build[g.rng.Intn(len(build))]())
	}
	return out
}

// builders is indexed in templateNames order.
func (g *Generator) builders() []func() quiz.Question {
	return []func() quiz.Question{g.Arithmetic, g.Geometric, g.Fibonacci, g.OddOneOut}
}

// Arithmetic: start in [1,20], step in [2,9], ask for the fifth term.
func (g *Generator) Arithmetic() quiz.Question {
	a := 1 + g.rng.Intn(20)
	d := 2 + g.rng.Intn(8)
	terms, next := ArithmeticTerms(a, d)
	return g.sequenceQuestion(terms, next)
}

// Geometric: start in [1,5], ratio 2 or 3, ask for the fifth term.
func (g *Generator) Geometric() quiz.Question {
	a := 1 + g.rng.Intn(5)
	r := 2 + g.rng.Intn(2)
	terms, next := GeometricTerms(a, r)
	return g.sequenceQuestion(terms, next)
}

// Fibonacci: two seeds in [1,5], five terms shown, ask for the sixth.
func (g *Generator) Fibonacci() quiz.Question {
	x := 1 + g.rng.Intn(5)
	y := 1 + g.rng.Intn(5)
	terms, next := FibonacciTerms(x, y)
	return g.sequenceQuestion(terms, next)
}

// ArithmeticTerms returns a, a+d, a+2d, a+3d and the next term a+4d.
func ArithmeticTerms(a, d int) ([]int, int) {
	terms := make([]int, 4)
	for i := range terms {
		terms[i] = a + i*d
	}
	return terms, a + 4*d
}

// GeometricTerms returns a·r^0 … a·r^3 and the next term a·r^4.
func GeometricTerms(a, r int) ([]int, int) {
	terms := make([]int, 4)
	v := a
	for i := range terms {
		terms[i] = v
		v *= r
	}
	return terms, v
}

// FibonacciTerms returns five terms starting x, y where each later term is
// the sum of the two before it, and the sixth term.
func FibonacciTerms(x, y int) ([]int, int) {
	terms := []int{x, y}
	for len(terms) < 6 {
		n := len(terms)
		terms = append(terms, terms[n-1]+terms[n-2])
	}
	return terms[:5], terms[5]
}

func (g *Generator) sequenceQuestion(terms []int, next int) quiz.Question {
	shown := make([]string, len(terms))
	for i, t := range terms {
		shown[i] = strconv.Itoa(t)
	}
	choices, idx := Choices(g.rng, next)
	return quiz.Question{
		Prompt:      fmt.Sprintf("What number comes next in the sequence: %s, ?", strings.Join(shown, ", ")),
		Choices:     choices,
		AnswerIndex: idx,
	}
}

// Choices builds four distinct options around correct: the pool starts at
// {correct} and grows by correct±1, ±2, … ±5 until it has at least six
// values; the first four are shuffled. It returns the options and the
// position of correct among them.
func Choices(r Rand, correct int) ([]string, int) {
	pool := []int{correct}
	for k := 1; k <= 5 && len(pool) < 6; k++ {
		pool = append(pool, correct+k, correct-k)
	}
	picked := append([]int(nil), pool[:quiz.ChoiceCount]...)
	r.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	out := make([]string, len(picked))
	idx := 0
	for i, v := range picked {
		out[i] = strconv.Itoa(v)
		if v == correct {
			idx = i
		}
	}
	return out, idx
}
