// Package directory bridges the membership records into the matchday core.
// The core only ever sees the MemberDirectory interface, so membership stays
// free to change its storage without touching matchday code.
package directory

import (
	"time"

	coreServices "core/services"
	membershipServices "membership/services"
)

type Directory struct {
	Players *membershipServices.PlayerService
	Dues    *membershipServices.DuesService
}

func New(players *membershipServices.PlayerService, dues *membershipServices.DuesService) *Directory {
	return &Directory{Players: players, Dues: dues}
}

// Eligibility maps the membership facts onto the core's voting rule. An
// account that is not approved counts as suspended.
func (d *Directory) Eligibility(playerID uint, now time.Time) (coreServices.Eligibility, error) {
	facts, err := d.Dues.Facts(playerID, now)
	if err != nil {
		return coreServices.Eligibility{}, err
	}
	return coreServices.Eligibility{
		Suspended:   facts.Suspended || !facts.Approved,
		DuesStatus:  facts.DuesStatus,
		WaiverDueBy: facts.WaiverDueBy,
	}, nil
}

func (d *Directory) PlayerName(playerID uint) string {
	return d.Players.PlayerName(playerID)
}

func (d *Directory) ApprovedPlayers() ([]coreServices.MemberInfo, error) {
	players, err := d.Players.Approved()
	if err != nil {
		return nil, err
	}
	infos := make([]coreServices.MemberInfo, 0, len(players))
	for _, p := range players {
		infos = append(infos, coreServices.MemberInfo{
			ID:           p.ID,
			BallerName:   p.BallerName,
			JerseyNumber: p.JerseyNumber,
		})
	}
	return infos, nil
}
