package repository

import "testing"

func TestLikeOperatorByDialect(t *testing.T) {
	cases := []struct {
		dialect string
		want    string
	}{
		{"sqlite", "LIKE"},
		{"postgres", "ILIKE"},
		{"postgresql", "ILIKE"},
		{" Postgres ", "ILIKE"},
		{"", "LIKE"},
		{"mysql", "LIKE"},
	}
	for _, tc := range cases {
		if got := likeOperatorByDialect(tc.dialect); got != tc.want {
			t.Fatalf("likeOperatorByDialect(%q) = %s, want %s", tc.dialect, got, tc.want)
		}
	}
}

func TestLikeOperatorNilDB(t *testing.T) {
	if got := likeOperator(nil); got != "LIKE" {
		t.Fatalf("likeOperator(nil) = %s, want LIKE", got)
	}
}

func TestDigitsOnlyPredicateByDialect(t *testing.T) {
	cases := []struct {
		dialect string
		want    string
	}{
		{"postgres", "membership_number ~ '^[0-9]+$'"},
		{"postgresql", "membership_number ~ '^[0-9]+$'"},
		{"sqlite", "membership_number != '' AND membership_number NOT GLOB '*[^0-9]*'"},
		{"", "membership_number != '' AND membership_number NOT GLOB '*[^0-9]*'"},
	}
	for _, tc := range cases {
		if got := digitsOnlyPredicateByDialect(tc.dialect, "membership_number"); got != tc.want {
			t.Fatalf("digitsOnlyPredicateByDialect(%q) = %s, want %s", tc.dialect, got, tc.want)
		}
	}
}
