package identity

// Role is the closed set of account roles in the marketplace
type Role string

const (
	RoleSeller   Role = "seller"
	RoleRetailer Role = "retailer"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSeller, RoleRetailer, RoleAdmin:
		return true
	}
	return false
}

// CanListProducts reports whether the role may manage a product catalog
func (r Role) CanListProducts() bool {
	return r == RoleSeller
}

// CanPlaceOrders reports whether the role may place orders
func (r Role) CanPlaceOrders() bool {
	return r == RoleRetailer
}

// CanManageUsers reports whether the role may administer accounts
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
