package usecase_test

import (
	"reflect"
	"testing"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

func TestParseDetections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected []entity.Detection
	}{
		{
			name: "bare JSON with one product",
			raw:  `{"products":[{"name":"Mug","quality_score":7,"visible":true}]}`,
			expected: []entity.Detection{
				{Name: "Mug", QualityScore: 7, Visible: true},
			},
		},
		{
			name:     "fenced JSON with language tag and prose",
			raw:      "Here you go:\n```json\n{\"products\": []}\n```",
			expected: []entity.Detection{},
		},
		{
			name: "fenced JSON without language tag",
			raw:  "```\n{\"products\":[{\"name\":\"Lamp\",\"quality_score\":5,\"visible\":false}]}\n```",
			expected: []entity.Detection{
				{Name: "Lamp", QualityScore: 5, Visible: false},
			},
		},
		{
			name: "JSON surrounded by prose without fences",
			raw:  `Sure! Here is the analysis: {"products":[{"name":"Kettle","quality_score":9,"visible":true}]} Hope that helps.`,
			expected: []entity.Detection{
				{Name: "Kettle", QualityScore: 9, Visible: true},
			},
		},
		{
			name:     "no braces at all degrades to empty",
			raw:      "I could not find any products in this frame.",
			expected: nil,
		},
		{
			name:     "malformed JSON degrades to empty",
			raw:      `{"products":[{"name":"Mug","quality_score":}]}`,
			expected: nil,
		},
		{
			name:     "missing products field degrades to empty",
			raw:      `{"items":[{"name":"Mug"}]}`,
			expected: []entity.Detection{},
		},
		{
			name:     "empty input degrades to empty",
			raw:      "",
			expected: nil,
		},
		{
			name: "missing name defaults to Unknown Product",
			raw:  `{"products":[{"quality_score":4,"visible":true}]}`,
			expected: []entity.Detection{
				{Name: usecase.UnknownProductName, QualityScore: 4, Visible: true},
			},
		},
		{
			name: "missing quality_score defaults to zero",
			raw:  `{"products":[{"name":"Headphones","visible":true}]}`,
			expected: []entity.Detection{
				{Name: "Headphones", QualityScore: 0, Visible: true},
			},
		},
		{
			name: "multiple products are all returned",
			raw:  `{"products":[{"name":"A","quality_score":1,"visible":true},{"name":"B","quality_score":2,"visible":false}]}`,
			expected: []entity.Detection{
				{Name: "A", QualityScore: 1, Visible: true},
				{Name: "B", QualityScore: 2, Visible: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := usecase.ParseDetections(tt.raw)

			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("detections mismatch:\n got  %#v\n want %#v", got, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		expected   string
		expectedOK bool
	}{
		{
			name:       "plain object",
			text:       `{"prompt":"studio shot"}`,
			expected:   `{"prompt":"studio shot"}`,
			expectedOK: true,
		},
		{
			name:       "object inside json fence",
			text:       "```json\n{\"prompt\":\"x\"}\n```",
			expected:   `{"prompt":"x"}`,
			expectedOK: true,
		},
		{
			name:       "no object present",
			text:       "nothing here",
			expectedOK: false,
		},
		{
			name:       "reversed braces are rejected",
			text:       "} {",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := usecase.ExtractJSONObject(tt.text)
			if ok != tt.expectedOK {
				t.Fatalf("expected ok=%v, got %v", tt.expectedOK, ok)
			}
			if ok && got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
