package models

import "testing"

func TestNextID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ids  []int64
		want int64
	}{
		{"empty table", nil, 1},
		{"sequential", []int64{1, 2, 3}, 4},
		{"gaps keep max", []int64{7, 2}, 8},
		{"missing ids ignored", []int64{0, 0}, 1},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextID(tt.ids...); got != tt.want {
				t.Fatalf("NextID(%v) = %d, want %d", tt.ids, got, tt.want)
			}
		})
	}
}

func TestPercentageValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"10", 10, true},
		{" 2.5 % ", 2.5, true},
		{"q.s.", 0, false},
		{"", 0, false},
	}

	for _, tt := range cases {
		got, ok := FormulationIngredient{Percentage: tt.raw}.PercentageValue()
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("PercentageValue(%q) = (%v, %t), want (%v, %t)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHeadersCoverEveryTable(t *testing.T) {
	t.Parallel()

	for _, table := range TableOrder {
		headers, ok := Headers[table]
		if !ok || len(headers) == 0 {
			t.Fatalf("missing headers for %s", table)
		}
		if headers[0] != "id" {
			t.Fatalf("first header for %s = %q, want id", table, headers[0])
		}
	}
}

func TestINCIKeyFoldsCase(t *testing.T) {
	t.Parallel()

	if INCIKey("Aqua") != INCIKey("AQUA") {
		t.Fatal("expected INCI keys to match regardless of case")
	}
}
