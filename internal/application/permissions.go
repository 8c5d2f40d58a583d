package application

// canUnlink applies the owner-or-admin rule. Linking only affects the
// requester's own claim, so it needs no counterpart check.
func canUnlink(requesterID, ownerID, adminID string) bool {
	if requesterID == ownerID {
		return true
	}
	return adminID != "" && requesterID == adminID
}
