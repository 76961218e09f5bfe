package settlement

import "testing"

func TestComputeSplit(t *testing.T) {
	cases := []struct {
		name        string
		total       int64
		available   int64
		useWallet   bool
		wantApplied int64
		wantCharged int64
	}{
		{"partial cover", 1000, 300, true, 300, 700},
		{"wallet covers all", 500, 1000, true, 500, 0},
		{"exact cover", 500, 500, true, 500, 0},
		{"wallet disabled", 1000, 5000, false, 0, 1000},
		{"empty wallet", 1000, 0, true, 0, 1000},
		{"zero total", 0, 300, true, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeSplit(tc.total, tc.available, tc.useWallet)
			if got.WalletApplied != tc.wantApplied || got.Charged != tc.wantCharged {
				t.Fatalf("got %+v, want applied=%d charged=%d", got, tc.wantApplied, tc.wantCharged)
			}
		})
	}
}

func TestComputeSplitConservation(t *testing.T) {
	totals := []int64{0, 1, 299, 1000, 99999}
	balances := []int64{0, 1, 300, 1000, 100000}
	for _, total := range totals {
		for _, bal := range balances {
			for _, use := range []bool{true, false} {
				s := ComputeSplit(total, bal, use)
				if s.WalletApplied+s.Charged != total {
					t.Fatalf("total=%d bal=%d use=%v: applied+charged=%d", total, bal, use, s.WalletApplied+s.Charged)
				}
				if s.WalletApplied < 0 || s.Charged < 0 {
					t.Fatalf("total=%d bal=%d use=%v: negative component %+v", total, bal, use, s)
				}
				if s.WalletApplied > bal {
					t.Fatalf("applied %d exceeds balance %d", s.WalletApplied, bal)
				}
			}
		}
	}
}
