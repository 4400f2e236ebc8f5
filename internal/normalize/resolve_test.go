package normalize

import (
	"encoding/json"
	"testing"
)

func TestResolveEarliestCandidateWins(t *testing.T) {
	src := decode(t, `{"store_order":{"store":{"name":"Acme"}},"store":{"name":"Beta"},"store_name":"Gamma"}`)

	got := Resolve(src, OrderFields.StoreName, "fallback")
	if got != "Acme" {
		t.Fatalf("Resolve = %v, want Acme", got)
	}

	delete(src, "store_order")
	if got := Resolve(src, OrderFields.StoreName, "fallback"); got != "Beta" {
		t.Fatalf("Resolve without store_order = %v, want Beta", got)
	}
}

func TestResolveSkipsNilAndEmpty(t *testing.T) {
	src := decode(t, `{"a":null,"b":"","c":"   ","d":"value"}`)
	if got := Resolve(src, []string{"a", "b", "c", "d"}, nil); got != "value" {
		t.Fatalf("Resolve = %v, want value", got)
	}
}

func TestResolveKeepsFalsyNonStrings(t *testing.T) {
	src := decode(t, `{"count":0,"flag":false}`)
	if got := Resolve(src, []string{"count"}, 99); got != float64(0) {
		t.Errorf("Resolve(count) = %v, want 0", got)
	}
	if got := Resolve(src, []string{"flag"}, true); got != false {
		t.Errorf("Resolve(flag) = %v, want false", got)
	}
}

func TestResolveMissingIntermediateSegments(t *testing.T) {
	src := decode(t, `{"store":"flat string","items":[],"nested":{"deep":null}}`)
	candidates := []string{
		"store.name",
		"items.0.product.name",
		"items.x",
		"nested.deep.value",
		"absent.path",
		"",
	}
	if got := Resolve(src, candidates, "fallback"); got != "fallback" {
		t.Fatalf("Resolve = %v, want fallback", got)
	}
	if got := Resolve(nil, candidates, "fallback"); got != "fallback" {
		t.Fatalf("Resolve(nil) = %v, want fallback", got)
	}
}

func TestResolveArrayIndex(t *testing.T) {
	src := decode(t, `{"items":[{"product":{"name":"Kettle"}},{"product":{"name":"Toaster"}}]}`)
	if got := Resolve(src, []string{"items.1.product.name"}, nil); got != "Toaster" {
		t.Fatalf("Resolve = %v, want Toaster", got)
	}
	if got := Resolve(src, []string{"items.2.product.name", "items.-1.product.name"}, "none"); got != "none" {
		t.Fatalf("out of range index resolved to %v", got)
	}
}

func TestResolveStringScalarsOnly(t *testing.T) {
	src := decode(t, `{"reason":{"code":7},"reason_text":"Item damaged","id":1042,"active":true}`)

	if got := ResolveString(src, []string{"reason", "reason_text"}, ""); got != "Item damaged" {
		t.Errorf("ResolveString = %q, want Item damaged", got)
	}
	if got := ResolveString(src, []string{"id"}, ""); got != "1042" {
		t.Errorf("ResolveString(id) = %q, want 1042", got)
	}
	if got := ResolveString(src, []string{"active"}, ""); got != "true" {
		t.Errorf("ResolveString(active) = %q, want true", got)
	}
	if got := ResolveString(src, []string{"missing"}, "N/A"); got != "N/A" {
		t.Errorf("ResolveString(missing) = %q, want N/A", got)
	}
}

func TestResolveNumber(t *testing.T) {
	src := Raw{
		"formatted": "$1,250.00",
		"text":      "1,250.50",
		"num":       json.Number("42"),
		"nan":       "NaN",
	}

	if _, ok := ResolveNumber(src, []string{"formatted", "nan"}); ok {
		t.Error("currency-prefixed and NaN strings should not be numbers")
	}
	if got, ok := ResolveNumber(src, []string{"formatted", "text"}); !ok || got != 1250.5 {
		t.Errorf("ResolveNumber = %v, %v; want 1250.5, true", got, ok)
	}
	if got, ok := ResolveNumber(src, []string{"num"}); !ok || got != 42 {
		t.Errorf("ResolveNumber(num) = %v, %v; want 42, true", got, ok)
	}
}
