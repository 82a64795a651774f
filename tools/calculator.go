/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// calculatorHandler builds the handler for one arithmetic operation over
// parameters "a" and "b". Numeric inputs may arrive as JSON numbers,
// Go numerics, or numeric strings (typical of LLM-produced task inputs).
func calculatorHandler(operation string) Handler {
	return func(_ context.Context, input map[string]any) (any, error) {
		a, err := numberParam(input, "a")
		if err != nil {
			return nil, err
		}
		b, err := numberParam(input, "b")
		if err != nil {
			return nil, err
		}

		var result float64
		switch operation {
		case "add":
			result = a + b
		case "subtract":
			result = a - b
		case "multiply":
			result = a * b
		case "divide":
			if b == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			result = a / b
		case "modulo":
			if b == 0 {
				return nil, fmt.Errorf("modulo by zero is not allowed")
			}
			// Floored modulo: the result carries the divisor's sign.
			result = math.Mod(a, b)
			if result != 0 && (result < 0) != (b < 0) {
				result += b
			}
		default:
			return nil, fmt.Errorf("unknown operation: %q", operation)
		}
		return result, nil
	}
}

func numberParam(input map[string]any, key string) (float64, error) {
	v, ok := input[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number for %q: %w", key, err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format for %q: %v", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter %q must be numeric, got %T", key, v)
	}
}
