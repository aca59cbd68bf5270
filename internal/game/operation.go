package game

import "fmt"

// ErrUnsupportedOperation is returned for operations outside the four faces.
var ErrUnsupportedOperation = fmt.Errorf("unsupported operation")

// Operation is one of the four dice faces.
type Operation int

const (
	Addition Operation = iota
	Subtraction
	Multiplication
	Division
)

// Operations returns all four faces in dice order.
func Operations() []Operation {
	return []Operation{Addition, Subtraction, Multiplication, Division}
}

// Name returns the display name of the operation.
func (o Operation) Name() string {
	switch o {
	case Addition:
		return "Addition"
	case Subtraction:
		return "Subtraction"
	case Multiplication:
		return "Multiplication"
	case Division:
		return "Division"
	}
	return "Unknown"
}

// Symbol returns the display glyph of the operation.
func (o Operation) Symbol() string {
	switch o {
	case Addition:
		return "+"
	case Subtraction:
		return "−"
	case Multiplication:
		return "×"
	case Division:
		return "÷"
	}
	return "?"
}

// Color returns the dice face color associated with the operation.
func (o Operation) Color() string {
	switch o {
	case Addition:
		return "red"
	case Subtraction:
		return "blue"
	case Multiplication:
		return "green"
	case Division:
		return "yellow"
	}
	return ""
}

func (o Operation) valid() bool {
	return o >= Addition && o <= Division
}
