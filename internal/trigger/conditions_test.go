package trigger

import (
	"testing"
)

func TestEvaluateConditions_Operators(t *testing.T) {
	eventData := map[string]any{
		"status": "final",
		"result": map[string]any{
			"margin": 2.5,
			"winner": "Jane Doe",
		},
		"reporting_percent": 87,
		"headline":          "Polls closed statewide",
		"note":              nil,
	}

	tests := []struct {
		name      string
		condition Condition
		want      bool
	}{
		{
			name:      "equals match",
			condition: Condition{Field: "status", Operator: OpEquals, Value: "final"},
			want:      true,
		},
		{
			name:      "equals mismatch",
			condition: Condition{Field: "status", Operator: OpEquals, Value: "preliminary"},
			want:      false,
		},
		{
			name:      "equals numeric across types",
			condition: Condition{Field: "reporting_percent", Operator: OpEquals, Value: 87.0},
			want:      true,
		},
		{
			name:      "equals missing field",
			condition: Condition{Field: "nope", Operator: OpEquals, Value: "final"},
			want:      false,
		},
		{
			name:      "nested dot path",
			condition: Condition{Field: "result.winner", Operator: OpEquals, Value: "Jane Doe"},
			want:      true,
		},
		{
			name:      "dot path through non-map",
			condition: Condition{Field: "status.inner", Operator: OpEquals, Value: "x"},
			want:      false,
		},
		{
			name:      "contains match",
			condition: Condition{Field: "headline", Operator: OpContains, Value: "closed"},
			want:      true,
		},
		{
			name:      "contains on non-string value",
			condition: Condition{Field: "reporting_percent", Operator: OpContains, Value: "8"},
			want:      false,
		},
		{
			name:      "contains non-string needle",
			condition: Condition{Field: "headline", Operator: OpContains, Value: 5},
			want:      false,
		},
		{
			name:      "greater_than true",
			condition: Condition{Field: "reporting_percent", Operator: OpGreaterThan, Value: 50},
			want:      true,
		},
		{
			name:      "greater_than false",
			condition: Condition{Field: "reporting_percent", Operator: OpGreaterThan, Value: 90},
			want:      false,
		},
		{
			name:      "greater_than non-numeric",
			condition: Condition{Field: "status", Operator: OpGreaterThan, Value: 1},
			want:      false,
		},
		{
			name:      "less_than nested float",
			condition: Condition{Field: "result.margin", Operator: OpLessThan, Value: 3},
			want:      true,
		},
		{
			name:      "not_null present",
			condition: Condition{Field: "status", Operator: OpNotNull},
			want:      true,
		},
		{
			name:      "not_null explicit nil",
			condition: Condition{Field: "note", Operator: OpNotNull},
			want:      false,
		},
		{
			name:      "not_null missing",
			condition: Condition{Field: "nope", Operator: OpNotNull},
			want:      false,
		},
		{
			name:      "changed with previous differing",
			condition: Condition{Field: "status", Operator: OpChanged, Previous: "preliminary"},
			want:      true,
		},
		{
			name:      "changed with previous equal",
			condition: Condition{Field: "status", Operator: OpChanged, Previous: "final"},
			want:      false,
		},
		{
			name:      "changed without previous always false",
			condition: Condition{Field: "status", Operator: OpChanged},
			want:      false,
		},
		{
			name:      "unknown operator resolves to false",
			condition: Condition{Field: "status", Operator: Operator("matches"), Value: "final"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateConditions([]Condition{tt.condition}, eventData)
			if got != tt.want {
				t.Errorf("EvaluateConditions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateConditions_AllMustPass(t *testing.T) {
	eventData := map[string]any{
		"status":            "final",
		"reporting_percent": 100,
	}

	conditions := []Condition{
		{Field: "status", Operator: OpEquals, Value: "final"},
		{Field: "reporting_percent", Operator: OpGreaterThan, Value: 99},
	}
	if !EvaluateConditions(conditions, eventData) {
		t.Error("EvaluateConditions() = false, want true when all conditions pass")
	}

	conditions = append(conditions, Condition{Field: "status", Operator: OpEquals, Value: "preliminary"})
	if EvaluateConditions(conditions, eventData) {
		t.Error("EvaluateConditions() = true, want false when one condition fails")
	}
}

func TestEvaluateConditions_EmptyConditions(t *testing.T) {
	if !EvaluateConditions(nil, map[string]any{"x": 1}) {
		t.Error("EvaluateConditions() with no conditions should pass")
	}
}
