package normalize

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, js string) Raw {
	t.Helper()
	var m Raw
	if err := json.Unmarshal([]byte(js), &m); err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	return m
}

func decodeAny(t *testing.T, js string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(js), &v); err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	return v
}
