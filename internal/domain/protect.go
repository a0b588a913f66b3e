package domain

import "strings"

// Protected projections. One function per entity, applied at every store
// exit point when the caller asks for the redacted view. Each returns a
// copy; the stored record is never modified.

// ProtectUser drops the id and privilege level and masks the password
// character-for-character. The mask preserves length, not content; the
// value underneath is already a hash, so this is presentation, not a
// security mechanism.
func ProtectUser(u *User) *User {
	if u == nil {
		return nil
	}
	out := *u
	out.ID = ""
	out.Level = nil
	out.Password = strings.Repeat("*", len(u.Password))
	return &out
}

// ProtectProduct drops the id and category reference.
func ProtectProduct(p *Product) *Product {
	if p == nil {
		return nil
	}
	out := *p
	out.ID = ""
	out.CategoryID = ""
	return &out
}

// ProtectOrder drops the owning-user reference.
func ProtectOrder(o *Order) *Order {
	if o == nil {
		return nil
	}
	out := *o
	out.UserID = ""
	return &out
}
