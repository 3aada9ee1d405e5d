package models

import "testing"

func TestPlayerRefStorageRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		matchdayID uint
		ref        PlayerRef
	}{
		{"real player", 7, RealRef(42)},
		{"guest of squad", 7, GuestRef(7, 3)},
		{"guest with large squad id", 7, GuestRef(7, 999_999)},
		{"legacy guest", 7, LegacyGuestRef(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := tt.ref.StorageID()
			decoded, ok := DecodeRef(tt.matchdayID, stored)
			if !ok {
				t.Fatalf("DecodeRef(%d, %d) not ok", tt.matchdayID, stored)
			}
			if decoded != tt.ref {
				t.Errorf("round trip = %+v, want %+v", decoded, tt.ref)
			}
		})
	}
}

func TestPlayerRefEncodingsDoNotCollide(t *testing.T) {
	// Guests of different squads on the same matchday, the legacy guest and
	// real players must all map to distinct storage ids.
	seen := map[int64]string{}
	add := func(label string, id int64) {
		if prev, ok := seen[id]; ok {
			t.Fatalf("storage id %d used by both %s and %s", id, prev, label)
		}
		seen[id] = label
	}
	add("real 1", RealRef(1).StorageID())
	add("real 9", RealRef(9).StorageID())
	add("legacy guest", LegacyGuestRef(9).StorageID())
	for squadID := uint(1); squadID <= 4; squadID++ {
		add("guest", GuestRef(9, squadID).StorageID())
	}
}

func TestPlayerRefGuestIsNegative(t *testing.T) {
	if id := GuestRef(3, 12).StorageID(); id >= 0 {
		t.Errorf("guest storage id = %d, want negative", id)
	}
	if id := LegacyGuestRef(3).StorageID(); id != -3 {
		t.Errorf("legacy guest storage id = %d, want -3", id)
	}
	if !GuestRef(3, 12).IsGuest() || !LegacyGuestRef(3).IsGuest() {
		t.Error("guest variants must report IsGuest")
	}
	if RealRef(5).IsGuest() {
		t.Error("real ref must not report IsGuest")
	}
}

func TestDecodeRefRejectsForeignIDs(t *testing.T) {
	// A guest id encoded for matchday 2 must not decode under matchday 9.
	stored := GuestRef(2, 1).StorageID()
	if ref, ok := DecodeRef(9, stored); ok {
		t.Errorf("DecodeRef(9, %d) = %+v, want not ok", stored, ref)
	}
}
