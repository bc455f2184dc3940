package trigger

import (
	"fmt"
	"strings"
)

// EvaluateConditions reports whether every condition passes against the
// event payload. Conditions are combined with logical AND. Malformed
// input never aborts evaluation: unknown operators, missing fields and
// type mismatches all resolve to false so a partially defined rule set
// can keep running.
func EvaluateConditions(conditions []Condition, eventData map[string]any) bool {
	for _, cond := range conditions {
		if !evaluateCondition(cond, eventData) {
			return false
		}
	}
	return true
}

func evaluateCondition(cond Condition, eventData map[string]any) bool {
	value, present := resolvePath(eventData, cond.Field)

	switch cond.Operator {
	case OpEquals:
		return present && looseEqual(value, cond.Value)
	case OpContains:
		s, ok := value.(string)
		if !ok {
			return false
		}
		want, ok := cond.Value.(string)
		if !ok {
			return false
		}
		return strings.Contains(s, want)
	case OpGreaterThan:
		v, ok := toFloat(value)
		if !ok {
			return false
		}
		w, ok := toFloat(cond.Value)
		if !ok {
			return false
		}
		return v > w
	case OpLessThan:
		v, ok := toFloat(value)
		if !ok {
			return false
		}
		w, ok := toFloat(cond.Value)
		if !ok {
			return false
		}
		return v < w
	case OpNotNull:
		return present && value != nil
	case OpChanged:
		if cond.Previous == nil {
			return false
		}
		return !looseEqual(value, cond.Previous)
	default:
		// Unknown operator: never fire on a rule we cannot interpret.
		return false
	}
}

// resolvePath walks a dot-path through nested maps. A missing segment
// resolves to absent, never an error.
func resolvePath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = data
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// looseEqual compares two payload values. Numeric values compare by
// magnitude regardless of concrete type (JSON decoding yields float64,
// hand-built payloads often carry int).
func looseEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Validate checks that a trigger is well formed enough to register.
func Validate(t *Trigger) error {
	if t.ID == "" {
		return fmt.Errorf("trigger id cannot be empty")
	}
	if t.EventType == "" {
		return fmt.Errorf("trigger event type cannot be empty")
	}
	if t.Priority.Rank() == 0 {
		return fmt.Errorf("invalid trigger priority: %s", t.Priority)
	}
	if t.Cooldown < 0 {
		return fmt.Errorf("trigger cooldown cannot be negative")
	}
	return nil
}
