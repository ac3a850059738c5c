package privacy

import "github.com/opsdeck/backoffice/internal/records"

// RedactUser returns a copy of the user with every field the identity may
// not see replaced by its masked form. The record-owner identity is the user
// record itself.
func RedactUser(g *Gate, u records.User) records.User {
	identity := u.ID

	if !g.IsFieldVisible(identity, FieldEmail) {
		u.Email = MaskEmail(u.Email)
	}
	if !g.IsFieldVisible(identity, FieldPhone) {
		u.Phone = MaskPhone(u.Phone)
	}
	if !g.IsFieldVisible(identity, FieldAddress) {
		u.Address = MaskAddress(u.Address)
	}
	if !g.IsFieldVisible(identity, FieldDateOfBirth) {
		u.DateOfBirth = MaskDateOfBirth(u.DateOfBirth)
	}
	return u
}
