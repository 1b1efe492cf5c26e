package split

import (
	"math"
	"testing"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []uint
		wantErr      bool
		wantAmounts  []float64
	}{
		{
			name:         "even division",
			total:        90.00,
			participants: []uint{1, 2, 3},
			wantAmounts:  []float64{30.00, 30.00, 30.00},
		},
		{
			name:         "one leftover cent goes to first participant",
			total:        100.00,
			participants: []uint{1, 2, 3},
			wantAmounts:  []float64{33.34, 33.33, 33.33},
		},
		{
			name:         "two leftover cents in input order",
			total:        0.05,
			participants: []uint{7, 8, 9},
			wantAmounts:  []float64{0.02, 0.02, 0.01},
		},
		{
			name:         "single participant gets everything",
			total:        42.37,
			participants: []uint{5},
			wantAmounts:  []float64{42.37},
		},
		{
			name:         "zero total should error",
			total:        0,
			participants: []uint{1},
			wantErr:      true,
		},
		{
			name:         "negative total should error",
			total:        -10,
			participants: []uint{1},
			wantErr:      true,
		},
		{
			name:         "no participants should error",
			total:        10,
			participants: []uint{},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(tt.total, tt.participants)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EqualSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(shares) != len(tt.wantAmounts) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.wantAmounts))
			}
			for i, want := range tt.wantAmounts {
				if shares[i].UserID != tt.participants[i] {
					t.Errorf("share %d user = %d, want %d", i, shares[i].UserID, tt.participants[i])
				}
				if shares[i].Amount != want {
					t.Errorf("share %d amount = %v, want %v", i, shares[i].Amount, want)
				}
			}
		})
	}
}

// The sum of an equal split must round-trip to the total exactly, and no two
// shares may differ by more than one cent, for any participant count.
func TestEqualSplit_Exactness(t *testing.T) {
	totals := []float64{0.01, 0.10, 1.00, 9.99, 33.33, 100.00, 123.45, 999.97, 10000.01}
	for _, total := range totals {
		for n := 1; n <= 12; n++ {
			participants := make([]uint, n)
			for i := range participants {
				participants[i] = uint(i + 1)
			}

			shares, err := EqualSplit(total, participants)
			if err != nil {
				t.Fatalf("EqualSplit(%v, n=%d) failed: %v", total, n, err)
			}

			var sumCents int64
			minAmt, maxAmt := shares[0].Amount, shares[0].Amount
			for _, s := range shares {
				sumCents += int64(math.Round(s.Amount * 100))
				minAmt = math.Min(minAmt, s.Amount)
				maxAmt = math.Max(maxAmt, s.Amount)
			}

			if sumCents != int64(math.Round(total*100)) {
				t.Errorf("total %v over %d: shares sum to %d cents, want %d", total, n, sumCents, int64(math.Round(total*100)))
			}
			if maxAmt-minAmt > 0.01+1e-9 {
				t.Errorf("total %v over %d: share spread %v exceeds one cent", total, n, maxAmt-minAmt)
			}
		}
	}
}

func TestValidateCustomSplit(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		shares  []Share
		wantErr bool
	}{
		{
			name:   "exact sum",
			total:  100.00,
			shares: []Share{{UserID: 1, Amount: 60.00}, {UserID: 2, Amount: 40.00}},
		},
		{
			name:   "one cent under is tolerated",
			total:  100.00,
			shares: []Share{{UserID: 1, Amount: 60.00}, {UserID: 2, Amount: 39.99}},
		},
		{
			name:    "two cents under is rejected",
			total:   100.00,
			shares:  []Share{{UserID: 1, Amount: 60.00}, {UserID: 2, Amount: 39.98}},
			wantErr: true,
		},
		{
			name:    "zero share is rejected",
			total:   100.00,
			shares:  []Share{{UserID: 1, Amount: 0}, {UserID: 2, Amount: 100.00}},
			wantErr: true,
		},
		{
			name:    "negative share is rejected",
			total:   100.00,
			shares:  []Share{{UserID: 1, Amount: -5.00}, {UserID: 2, Amount: 105.00}},
			wantErr: true,
		},
		{
			name:    "no shares is rejected",
			total:   50.00,
			shares:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomSplit(tt.total, tt.shares)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCustomSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
