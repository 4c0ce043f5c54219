package sparql

// Range is a half-open row range [Start, Stop) with an optional step.
//
// Build ranges with Span and From rather than the literal:
//
//	sparql.Span(0, 5)       // rows 0..4
//	sparql.From(3)          // rows 3..
//	sparql.Span(0, 5).By(2) // rejected: SPARQL has no step
type Range struct {
	Start int
	Stop  int  // exclusive; ignored when Open
	Open  bool // no upper bound
	Step  int  // 0 means 1
}

// Span returns the range [start, stop).
func Span(start, stop int) Range {
	return Range{Start: start, Stop: stop}
}

// From returns the unbounded range [start, ...).
func From(start int) Range {
	return Range{Start: start, Open: true}
}

// At returns the single-row range [index, index+1).
func At(index int) Range {
	return Span(index, index+1)
}

// By returns a copy of r with the given step.
func (r Range) By(step int) Range {
	r.Step = step
	return r
}

func (r Range) validate() error {
	if r.Step != 0 && r.Step != 1 {
		return &BuildError{Code: ErrCodeUnsupportedStep, Message: "only a step of 1 is supported"}
	}
	if r.Start < 0 {
		return newRangeError("start must be non-negative, got %d", r.Start)
	}
	if r.Open {
		return nil
	}
	if r.Stop < 0 {
		return newRangeError("stop must be non-negative, got %d", r.Stop)
	}
	if r.Stop < r.Start {
		return newRangeError("stop %d is before start %d", r.Stop, r.Start)
	}
	return nil
}
