package domain

import (
	"errors"
	"testing"
)

func TestParsePrice(t *testing.T) {
	for _, raw := range []string{"500", " 500.00 ", "180.5", "1.500", "0"} {
		if _, err := ParsePrice(raw); err != nil {
			t.Fatalf("%q: unexpected error %v", raw, err)
		}
	}
	for _, raw := range []string{"0.005", "12.345", "-1", "abc", ""} {
		_, err := ParsePrice(raw)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "price" {
			t.Fatalf("%q: expected price ValidationError got %v", raw, err)
		}
	}
}
