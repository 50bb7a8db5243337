package puzzle

import "github.com/mind-engage/mindengage-quiz/internal/quiz"

var staticPuzzles = []quiz.Question{
	{Prompt: "Which number completes the pattern: 1, 4, 9, 16, ?", Choices: []string{"20", "25", "24", "36"}, AnswerIndex: 1},
	{Prompt: "If all Bloops are Razzies and all Razzies are Lazzies, are all Bloops definitely Lazzies?", Choices: []string{"Yes", "No", "Only some", "Cannot be determined"}, AnswerIndex: 0},
	{Prompt: "Which word is the odd one out?", Choices: []string{"Apple", "Banana", "Carrot", "Cherry"}, AnswerIndex: 2},
	{Prompt: "A bat and a ball cost $1.10 in total. The bat costs $1.00 more than the ball. How much does the ball cost?", Choices: []string{"$0.10", "$0.05", "$0.15", "$1.00"}, AnswerIndex: 1},
	{Prompt: "What letter comes next: J, F, M, A, M, ?", Choices: []string{"J", "A", "S", "M"}, AnswerIndex: 0},
	{Prompt: "How many months have at least 28 days?", Choices: []string{"1", "2", "6", "12"}, AnswerIndex: 3},
	{Prompt: "Complete the series: 2, 6, 12, 20, 30, ?", Choices: []string{"40", "42", "36", "44"}, AnswerIndex: 1},
	{Prompt: "Rearrange the letters CIFAIPC to get the name of a(n):", Choices: []string{"City", "Animal", "Ocean", "River"}, AnswerIndex: 2},
	{Prompt: "Which number is missing: 3, 8, 15, 24, ?, 48", Choices: []string{"33", "35", "36", "37"}, AnswerIndex: 1},
	{Prompt: "A is taller than B and B is taller than C. Who is the shortest?", Choices: []string{"A", "B", "C", "Cannot tell"}, AnswerIndex: 2},
	{Prompt: "Which shape has the most sides?", Choices: []string{"Hexagon", "Pentagon", "Octagon", "Heptagon"}, AnswerIndex: 2},
	{Prompt: "What is half of a quarter of 80?", Choices: []string{"10", "20", "5", "40"}, AnswerIndex: 0},
}

// Static returns the hand-written seed puzzles. Each call returns fresh
// copies.
func Static() []quiz.Question {
	out := make([]quiz.Question, len(staticPuzzles))
	for i, q := range staticPuzzles {
		q.Choices = append([]string(nil), q.Choices...)
		out[i] = q
	}
	return out
}
