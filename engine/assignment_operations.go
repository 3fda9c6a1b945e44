package engine

import (
	"zpm/errors"
	"zpm/logging"
	"zpm/store"
)

// Assign applies an assignment operator to the variable name.
//
//	=   stores the operand
//	+=  adds when both sides are integers, otherwise concatenates
//	-=  subtracts; both sides must be integers
//	*=  multiplies; both sides must be integers
//
// Integer arithmetic is 32-bit and wraps on overflow.
func (e *ExecutionEngine) Assign(operator, name, operand string) error {
	value := e.resolveOperand(operand)

	switch operator {
	case "=":
		e.vars.Set(name, value)

	case "+=":
		// A fresh variable reads as "", which is not an integer, so += on it concatenates.
		current, _ := e.vars.Get(name)
		left, leftOK := store.ParseInteger(current)
		right, rightOK := store.ParseInteger(value)
		if leftOK && rightOK {
			e.vars.Set(name, store.FormatInteger(left+right))
		} else {
			e.vars.Set(name, current+value)
		}

	case "-=", "*=":
		left, right, err := e.integerOperands(name, value)
		if err != nil {
			return err
		}
		if operator == "-=" {
			e.vars.Set(name, store.FormatInteger(left-right))
		} else {
			e.vars.Set(name, store.FormatInteger(left*right))
		}

	default:
		return errors.NewUnknownOperatorError(operator)
	}

	if e.logger.GetLevel() <= logging.LevelDebug {
		stored, _ := e.vars.Get(name)
		e.logger.Debug("assigned",
			logging.StringField("variable", name),
			logging.StringField("operator", operator),
			logging.StringField("value", stored))
	}
	return nil
}

// resolveOperand substitutes a variable's value, strips one layer of
// double quotes from a string literal, or returns the operand as written.
func (e *ExecutionEngine) resolveOperand(operand string) string {
	if value, ok := e.vars.Get(operand); ok {
		return value
	}
	if len(operand) > 1 && operand[0] == '"' && operand[len(operand)-1] == '"' {
		return operand[1 : len(operand)-1]
	}
	return operand
}

// integerOperands reads the current value of name and the resolved operand as integers
func (e *ExecutionEngine) integerOperands(name, value string) (int32, int32, error) {
	current, exists := e.vars.Get(name)
	left, leftOK := store.ParseInteger(current)
	right, rightOK := store.ParseInteger(value)
	if !exists || !leftOK || !rightOK {
		return 0, 0, errors.NewTypeMismatchError().
			WithContext("variable", name).
			WithContext("initialized", exists)
	}
	return left, right, nil
}
