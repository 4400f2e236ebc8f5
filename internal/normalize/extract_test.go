package normalize

import "testing"

func TestExtractList(t *testing.T) {
	tests := []struct {
		name string
		js   string
		want int
	}{
		{"top-level array", `[{"id":1},{"id":2}]`, 2},
		{"paginated envelope", `{"data":{"data":[{"id":1}],"total":1}}`, 1},
		{"items envelope", `{"data":{"items":[{"id":1},{"id":2},{"id":3}]}}`, 3},
		{"flat data", `{"data":[{"id":1}]}`, 1},
		{"non-objects skipped", `{"orders":[{"id":1}, 2, "x", null]}`, 1},
		{"no list", `{"data":{"total":0}}`, 0},
		{"scalar", `"nope"`, 0},
	}
	for _, tt := range tests {
		got := ExtractList(decodeAny(t, tt.js), nil)
		if len(got) != tt.want {
			t.Errorf("%s: got %d records, want %d", tt.name, len(got), tt.want)
		}
	}
}

func TestExtractListCustomPaths(t *testing.T) {
	payload := decodeAny(t, `{"payload":{"rows":[{"id":1}]},"data":[{"id":2},{"id":3}]}`)
	if got := ExtractList(payload, []string{"payload.rows"}); len(got) != 1 {
		t.Fatalf("custom path: got %d records", len(got))
	}
}
