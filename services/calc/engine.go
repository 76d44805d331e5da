// services/calc/engine.go
package calc

import (
	"nixieclock-go/errcode"
	"nixieclock-go/x/mathx"
)

type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return ""
	}
}

// Engine is a two-register, single-pending-operation calculator.
//
// working holds the running result, operand the second-operand entry in
// progress. Pressing an operator while an entry is in progress folds the
// entry into working (chaining: 2 + 2 + 2 displays 2, 4, 6); pressing it
// with no new digits is ignored. Equals folds and locks the result, so
// the next digit press starts a fresh number instead of appending.
type Engine struct {
	working  int64
	operand  int64
	pending  Op
	entering bool

	locked bool // result shown; next digit replaces, not appends
	errc   errcode.Code
	limit  int64 // largest magnitude the display can show
}

// New sizes the registers to the display: values saturate at
// digitCapacity decimal digits. digitCapacity <= 0 selects 8.
func New(digitCapacity int) *Engine {
	if digitCapacity <= 0 {
		digitCapacity = 8
	}
	return &Engine{limit: mathx.Pow10(digitCapacity) - 1}
}

// Digit feeds one digit press. Digits beyond the display capacity are
// ignored rather than shifting the register out of range.
func (e *Engine) Digit(d uint8) {
	if d > 9 {
		return
	}
	e.errc = ""
	if e.pending == OpNone {
		if e.locked {
			e.working = int64(d)
			e.locked = false
			return
		}
		e.working = e.appendDigit(e.working, d)
		return
	}
	e.operand = e.appendDigit(e.operand, d)
	e.entering = true
}

// Operator records op as the pending operation, first folding any entry
// in progress into working. With no new digits entered the press is
// ignored — repeating an operator must not re-apply it.
func (e *Engine) Operator(op Op) error {
	if op == OpNone || op > OpDiv {
		return errcode.InvalidParams
	}
	if e.pending == OpNone {
		e.pending = op
		e.operand = 0
		e.entering = false
		return nil
	}
	if !e.entering {
		return nil
	}
	res, err := e.apply(e.pending, e.working, e.operand)
	if err != nil {
		e.fail(err)
		return err
	}
	e.working = res
	e.pending = op
	e.operand = 0
	e.entering = false
	e.locked = false
	return nil
}

// Equals folds like an operator press but clears the pending operation,
// locking the result until a new operator or digit arrives.
func (e *Engine) Equals() error {
	if e.pending == OpNone {
		e.locked = true
		return nil
	}
	if !e.entering {
		e.pending = OpNone
		e.locked = true
		return nil
	}
	res, err := e.apply(e.pending, e.working, e.operand)
	if err != nil {
		e.fail(err)
		return err
	}
	e.working = res
	e.pending = OpNone
	e.operand = 0
	e.entering = false
	e.locked = true
	return nil
}

// Clear resets every register; also the short-press action of the
// clear/mode button.
func (e *Engine) Clear() {
	*e = Engine{limit: e.limit}
}

func (e *Engine) Working() int64    { return e.working }
func (e *Engine) Operand() int64    { return e.operand }
func (e *Engine) Pending() Op       { return e.pending }
func (e *Engine) Entering() bool    { return e.entering }
func (e *Engine) Err() errcode.Code { return e.errc }

// DisplayValue is what the digit bank should show: the entry in progress
// if there is one, otherwise the running result.
func (e *Engine) DisplayValue() int64 {
	if e.entering {
		return e.operand
	}
	return e.working
}

func (e *Engine) appendDigit(v int64, d uint8) int64 {
	n := v*10 + int64(d)
	if mathx.Abs(n) > e.limit {
		return v
	}
	return n
}

// apply computes op over (a, b), saturating at the display limit.
// Division by zero leaves the registers to the caller's fail path.
func (e *Engine) apply(op Op, a, b int64) (int64, error) {
	var r int64
	switch op {
	case OpAdd:
		r = a + b
	case OpSub:
		r = a - b
	case OpMul:
		r = a * b
	case OpDiv:
		if b == 0 {
			return 0, errcode.DivideByZero
		}
		r = a / b
	default:
		return 0, errcode.InvalidParams
	}
	return mathx.Clamp(r, -e.limit, e.limit), nil
}

// fail latches the error, drops the pending operation and locks the
// (unchanged) working register so the next digit starts cleanly.
func (e *Engine) fail(err error) {
	e.pending = OpNone
	e.operand = 0
	e.entering = false
	e.locked = true
	e.errc = errcode.Of(err)
}
