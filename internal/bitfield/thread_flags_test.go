package bitfield

import "testing"

func TestPackUnpackThreadFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags ThreadFlags
	}{
		{"unused", ThreadFlags{State: 0, Joinable: false}},
		{"runnable joinable", ThreadFlags{State: 1, Joinable: true}},
		{"running", ThreadFlags{State: 2, Joinable: true}},
		{"dead detached", ThreadFlags{State: 3, Joinable: false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			packed, err := PackThreadFlags(tc.flags)
			if err != nil {
				t.Fatalf("PackThreadFlags error: %v", err)
			}

			got := UnpackThreadFlags(packed)
			if got.State != tc.flags.State || got.Joinable != tc.flags.Joinable {
				t.Errorf("round trip mismatch: got %+v, want state=%d joinable=%v",
					got, tc.flags.State, tc.flags.Joinable)
			}
		})
	}
}

func TestPackThreadFlagsOverflow(t *testing.T) {
	_, err := PackThreadFlags(ThreadFlags{State: 7})
	if err == nil {
		t.Fatal("expected error packing a State value that does not fit 2 bits")
	}
}
