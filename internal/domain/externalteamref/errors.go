package externalteamref

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(appID, externalTeamID string) error {
	return ierr.NewErrorf("external team ref not found: app=%s externalTeamId=%s", appID, externalTeamID).
		Mark(ierr.ErrNotFound)
}
