package catalog_test

import (
	"testing"

	"goldleaf/internal/catalog"
)

func TestFuzzyMatch(t *testing.T) {
	cases := []struct {
		query, target string
		want          bool
	}{
		{"", "anything", true},
		{"", "", true},
		{"blk", "Black Leather Belt", true},
		{"blk", "Brown Wallet", false}, // b,l match but no k after
		{"blk wlt", "black wallet", true},
		{"gold", "Gold Pendant", true},
		{"gold", "gld", false},
		{"a", "", false},
		{"BLACK", "black", true}, // case-insensitive
		{"kcalb", "black", false},
	}
	for _, tc := range cases {
		if got := catalog.FuzzyMatch(tc.query, tc.target); got != tc.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tc.query, tc.target, got, tc.want)
		}
	}
}
