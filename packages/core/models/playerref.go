package models

// PlayerRef distinguishes the three scorer/assister identities the ledger
// accepts: a real registered player, the guest slot of one squad, and the
// legacy single-guest-per-matchday identity kept for old rows.
//
// Storage keeps the historical integer encoding (real ids positive, guest
// ids negative) so existing data stays readable; all logic matches on the
// variant instead of decoding signs by hand.
type RefKind int

const (
	RefReal RefKind = iota + 1
	RefGuest
	RefLegacyGuest
)

// guestSquadSpan separates the matchday and squad components of a guest
// storage id. Squad ids never reach it in practice.
const guestSquadSpan = 1_000_000

type PlayerRef struct {
	Kind       RefKind
	PlayerID   uint // RefReal
	SquadID    uint // RefGuest
	MatchdayID uint // RefGuest, RefLegacyGuest
}

func RealRef(playerID uint) PlayerRef {
	return PlayerRef{Kind: RefReal, PlayerID: playerID}
}

func GuestRef(matchdayID, squadID uint) PlayerRef {
	return PlayerRef{Kind: RefGuest, MatchdayID: matchdayID, SquadID: squadID}
}

func LegacyGuestRef(matchdayID uint) PlayerRef {
	return PlayerRef{Kind: RefLegacyGuest, MatchdayID: matchdayID}
}

// StorageID returns the integer form persisted in goal/card rows.
func (r PlayerRef) StorageID() int64 {
	switch r.Kind {
	case RefGuest:
		return -(int64(r.MatchdayID)*guestSquadSpan + int64(r.SquadID))
	case RefLegacyGuest:
		return -int64(r.MatchdayID)
	default:
		return int64(r.PlayerID)
	}
}

func (r PlayerRef) IsGuest() bool {
	return r.Kind == RefGuest || r.Kind == RefLegacyGuest
}

// DecodeRef recovers the variant behind a stored id in the context of one
// matchday. Returns false for negative ids that decode to neither the
// matchday's legacy guest nor a plausible guest-of-squad id.
func DecodeRef(matchdayID uint, stored int64) (PlayerRef, bool) {
	if stored > 0 {
		return RealRef(uint(stored)), true
	}
	if stored == -int64(matchdayID) {
		return LegacyGuestRef(matchdayID), true
	}
	squadID := -stored - int64(matchdayID)*guestSquadSpan
	if squadID > 0 && squadID < guestSquadSpan {
		return GuestRef(matchdayID, uint(squadID)), true
	}
	return PlayerRef{}, false
}
