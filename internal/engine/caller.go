package engine

// Role is the role of an authenticated caller.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Caller is the identity supplied by the authentication layer. The engine
// only compares ids; it never authenticates.
type Caller struct {
	UserID   string
	VendorID string
	Role     Role
}

// OwnsVendor reports whether the caller may act on records of vendorID.
// Admins may act on any vendor.
func (c Caller) OwnsVendor(vendorID string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	return c.Role == RoleVendor && c.VendorID != "" && c.VendorID == vendorID
}
