/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package utils

import "testing"

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestExtractAndParseJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     payload
		wantErr  bool
	}{
		{
			name:     "plain json",
			response: `{"name": "t1", "count": 3}`,
			want:     payload{Name: "t1", Count: 3},
		},
		{
			name:     "fenced with language tag",
			response: "Here you go:\n```json\n{\"name\": \"t1\", \"count\": 3}\n```\nHope that helps!",
			want:     payload{Name: "t1", Count: 3},
		},
		{
			name:     "leading and trailing prose",
			response: `Sure! {"name": "t1", "count": 3} Let me know if you need anything else.`,
			want:     payload{Name: "t1", Count: 3},
		},
		{
			name:     "trailing comma repaired",
			response: `{"name": "t1", "count": 3,}`,
			want:     payload{Name: "t1", Count: 3},
		},
		{
			name:     "single-quoted keys repaired",
			response: `{'name': "t1", 'count': 3}`,
			want:     payload{Name: "t1", Count: 3},
		},
		{
			name:     "no json at all",
			response: "I cannot produce a plan for that.",
			wantErr:  true,
		},
		{
			name:     "empty response",
			response: "   ",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAndParseJSON[payload](tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractAndParseJSON() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractAndParseJSON() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractAndParseJSON() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
