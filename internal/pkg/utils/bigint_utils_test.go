package utils

import (
	"math/big"
	"testing"
)

func TestFormatRawAmount(t *testing.T) {
	pow10 := func(d int64) *big.Int {
		return new(big.Int).Exp(big.NewInt(10), big.NewInt(d), nil)
	}

	tests := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{"nil amount", nil, 18, "0"},
		{"zero d0", big.NewInt(0), 0, "0"},
		{"zero d6", big.NewInt(0), 6, "0"},
		{"zero d18", big.NewInt(0), 18, "0"},
		{"one d0", big.NewInt(1), 0, "1"},
		{"one d6", big.NewInt(1), 6, "0.000001"},
		{"one d18", big.NewInt(1), 18, "0.000000000000000001"},
		{"unit d0", big.NewInt(1), 0, "1"},
		{"unit d6", pow10(6), 6, "1"},
		{"unit d18", pow10(18), 18, "1"},
		{"integer d0", big.NewInt(1234), 0, "1234"},
		{"fractional", big.NewInt(1234500), 6, "1.2345"},
		{"trailing zeros trimmed", big.NewInt(1500000), 6, "1.5"},
		{"whole part zero", big.NewInt(500000), 6, "0.5"},
		{"eth amount", new(big.Int).Mul(big.NewInt(12345), pow10(14)), 18, "1.2345"},
		{"full precision preserved", new(big.Int).Add(pow10(18), big.NewInt(1)), 18, "1.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatRawAmount(tt.amount, tt.decimals)
			if err != nil {
				t.Fatalf("FormatRawAmount(%v, %d) returned error: %v", tt.amount, tt.decimals, err)
			}
			if got != tt.want {
				t.Errorf("FormatRawAmount(%v, %d) = %q, want %q", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatRawAmountNegative(t *testing.T) {
	if _, err := FormatRawAmount(big.NewInt(-1), 18); err == nil {
		t.Fatal("expected error for negative amount, got nil")
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"empty is native", "", "0x0000000000000000000000000000000000000000"},
		{"zero is native", "0x0000000000000000000000000000000000000000", "0x0000000000000000000000000000000000000000"},
		{"lowercase checksummed", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
		{"uppercase checksummed", "0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.address); got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestBatchStrings(t *testing.T) {
	batches := BatchStrings([]string{"a", "b", "c", "d", "e"}, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[2]) != 1 || batches[2][0] != "e" {
		t.Errorf("unexpected last batch: %v", batches[2])
	}
}
