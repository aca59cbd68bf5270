package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Question is a single arithmetic problem, immutable once generated.
type Question struct {
	Operand1  int
	Operand2  int
	Operation Operation
	Answer    int
}

// Text renders the problem as shown to the player.
func (q Question) Text() string {
	return fmt.Sprintf("%d %s %d = ?", q.Operand1, q.Operation.Symbol(), q.Operand2)
}

// Generator produces randomized questions.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSource returns a Generator with a fixed random source.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate builds a question for the operation scaled by the profile
// multiplier. Subtraction never goes negative; division is always exact.
func (g *Generator) Generate(op Operation, profile Profile) (Question, error) {
	m := profile.Multiplier
	switch op {
	case Addition:
		a := g.uniform(1, scaled(50, m))
		b := g.uniform(1, scaled(50, m))
		return Question{Operand1: a, Operand2: b, Operation: op, Answer: a + b}, nil
	case Subtraction:
		a := g.uniform(20, scaled(50, m)+20)
		b := g.uniform(0, a-1)
		return Question{Operand1: a, Operand2: b, Operation: op, Answer: a - b}, nil
	case Multiplication:
		a := g.uniform(1, scaled(12, m))
		b := g.uniform(1, scaled(12, m))
		return Question{Operand1: a, Operand2: b, Operation: op, Answer: a * b}, nil
	case Division:
		divisor := g.uniform(2, scaled(10, m)+2)
		quotient := g.uniform(1, scaled(12, m))
		return Question{Operand1: divisor * quotient, Operand2: divisor, Operation: op, Answer: quotient}, nil
	}
	return Question{}, fmt.Errorf("%w: %d", ErrUnsupportedOperation, int(op))
}

// RollFace picks one of the four operations uniformly.
func (g *Generator) RollFace() Operation {
	return Operation(g.rnd.Intn(4))
}

// uniform returns an integer in the closed range [lo, hi].
func (g *Generator) uniform(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rnd.Intn(hi-lo+1)
}

func scaled(base int, multiplier float64) int {
	return int(math.Floor(float64(base) * multiplier))
}
