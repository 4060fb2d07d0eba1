package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "naive utc with micros",
			input: `"2025-03-04T10:20:30.123456"`,
			want:  time.Date(2025, 3, 4, 10, 20, 30, 123456000, time.UTC),
		},
		{
			name:  "rfc3339 with zone",
			input: `"2025-03-04T12:20:30+02:00"`,
			want:  time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC),
		},
		{
			name:  "null",
			input: `null`,
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestArticle_ToDomain(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "Budget vote",
		"content": "text",
		"bias_score": 70,
		"summary": "s",
		"explanation": "e",
		"perspectives": ["a", "b"],
		"rewritten_text": "X",
		"author_id": 1,
		"created_at": "2025-01-01T00:00:00"
	}`

	var a Article
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := a.ToDomain()
	if got.ID != "7" {
		t.Errorf("id = %q", got.ID)
	}
	if got.RewrittenText != "X" {
		t.Errorf("rewritten = %q", got.RewrittenText)
	}
	if got.Analysis == nil || got.Analysis.BiasScore != 70 || got.Analysis.ArticleID != "7" {
		t.Fatalf("unexpected analysis %+v", got.Analysis)
	}
	if len(got.Analysis.Perspectives) != 2 {
		t.Errorf("perspectives = %v", got.Analysis.Perspectives)
	}
}

func TestArticle_WithoutScoreHasNoAnalysis(t *testing.T) {
	a := Article{ID: "3", Title: "t"}
	if a.ToAnalysis() != nil {
		t.Fatal("expected nil analysis")
	}
	if a.ToDomain().Analysis != nil {
		t.Fatal("expected nil analysis on domain article")
	}
}
