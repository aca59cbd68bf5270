package game

import (
	"errors"
	"math/rand"
	"testing"
)

const generationRounds = 500

func testGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(1))
}

func TestGenerateAdditionRanges(t *testing.T) {
	gen := testGenerator()
	for _, profile := range Difficulties() {
		limit := int(50 * profile.Multiplier)
		for i := 0; i < generationRounds; i++ {
			q, err := gen.Generate(Addition, profile)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if q.Operand1 < 1 || q.Operand1 > limit || q.Operand2 < 1 || q.Operand2 > limit {
				t.Fatalf("%s: operands %d, %d outside [1, %d]", profile.Name, q.Operand1, q.Operand2, limit)
			}
			if q.Answer != q.Operand1+q.Operand2 {
				t.Fatalf("answer %d != %d + %d", q.Answer, q.Operand1, q.Operand2)
			}
		}
	}
}

func TestGenerateSubtractionNeverNegative(t *testing.T) {
	gen := testGenerator()
	for _, profile := range Difficulties() {
		limit := int(50*profile.Multiplier) + 20
		for i := 0; i < generationRounds; i++ {
			q, err := gen.Generate(Subtraction, profile)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if q.Operand1 < 20 || q.Operand1 > limit {
				t.Fatalf("%s: operand1 %d outside [20, %d]", profile.Name, q.Operand1, limit)
			}
			if q.Operand2 < 0 || q.Operand2 >= q.Operand1 {
				t.Fatalf("operand2 %d outside [0, %d)", q.Operand2, q.Operand1)
			}
			if q.Answer != q.Operand1-q.Operand2 || q.Answer < 0 {
				t.Fatalf("answer %d for %d - %d", q.Answer, q.Operand1, q.Operand2)
			}
		}
	}
}

func TestGenerateMultiplicationRanges(t *testing.T) {
	gen := testGenerator()
	for _, profile := range Difficulties() {
		limit := int(12 * profile.Multiplier)
		for i := 0; i < generationRounds; i++ {
			q, err := gen.Generate(Multiplication, profile)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if q.Operand1 < 1 || q.Operand1 > limit || q.Operand2 < 1 || q.Operand2 > limit {
				t.Fatalf("%s: operands %d, %d outside [1, %d]", profile.Name, q.Operand1, q.Operand2, limit)
			}
			if q.Answer != q.Operand1*q.Operand2 {
				t.Fatalf("answer %d != %d * %d", q.Answer, q.Operand1, q.Operand2)
			}
		}
	}
}

func TestGenerateDivisionAlwaysExact(t *testing.T) {
	gen := testGenerator()
	for _, profile := range Difficulties() {
		divisorLimit := int(10*profile.Multiplier) + 2
		quotientLimit := int(12 * profile.Multiplier)
		for i := 0; i < generationRounds; i++ {
			q, err := gen.Generate(Division, profile)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if q.Operand2 < 2 || q.Operand2 > divisorLimit {
				t.Fatalf("%s: divisor %d outside [2, %d]", profile.Name, q.Operand2, divisorLimit)
			}
			if q.Answer < 1 || q.Answer > quotientLimit {
				t.Fatalf("%s: quotient %d outside [1, %d]", profile.Name, q.Answer, quotientLimit)
			}
			if q.Operand1 != q.Operand2*q.Answer {
				t.Fatalf("dividend %d != %d * %d", q.Operand1, q.Operand2, q.Answer)
			}
		}
	}
}

func TestGenerateUnsupportedOperation(t *testing.T) {
	gen := testGenerator()
	profile, err := GetProfile("easy")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if _, err := gen.Generate(Operation(42), profile); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("err = %v, want ErrUnsupportedOperation", err)
	}
}

func TestRollFaceCoversAllOperations(t *testing.T) {
	gen := testGenerator()
	seen := map[Operation]bool{}
	for i := 0; i < generationRounds; i++ {
		face := gen.RollFace()
		if !face.valid() {
			t.Fatalf("RollFace returned invalid operation %d", int(face))
		}
		seen[face] = true
	}
	for _, op := range Operations() {
		if !seen[op] {
			t.Errorf("operation %s never rolled", op.Name())
		}
	}
}

func TestQuestionText(t *testing.T) {
	q := Question{Operand1: 12, Operand2: 4, Operation: Division, Answer: 3}
	if got, want := q.Text(), "12 ÷ 4 = ?"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}
