package backend

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestNormalizeTags проверяет нормализацию трёх wire-форматов generated_tags.
func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"null", `null`, []string{}},
		{"отсутствует", ``, []string{}},
		{"JSON-массив", `["budget","finance"]`, []string{"budget", "finance"}},
		{"пустой массив", `[]`, []string{}},
		{"массив строкой", `"[\"budget\",\"ocr\"]"`, []string{"budget", "ocr"}},
		{"пустая строка", `""`, []string{}},
		{"мусор — пустой набор", `{"not":"tags"}`, []string{}},
		{"строка с мусором — пустой набор", `"oops"`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(json.RawMessage(tt.raw), testLogger())
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeTags(%s) = %v, ожидается %v", tt.raw, got, tt.want)
			}
		})
	}
}
