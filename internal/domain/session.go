package domain

import "fmt"

// Capabilities is what a signed-in user may do.
type Capabilities struct {
	ScheduleDonations bool `json:"schedule_donations"`
	RequestBlood      bool `json:"request_blood"`
	SearchInventory   bool `json:"search_inventory"`
	ViewInventory     bool `json:"view_inventory"`
	ReviewRequests    bool `json:"review_requests"`
	ManageDonations   bool `json:"manage_donations"`
	ManageUsers       bool `json:"manage_users"`
}

// Capability names one Capabilities flag, as used in route security tables.
type Capability string

const (
	CapScheduleDonations Capability = "schedule_donations"
	CapRequestBlood      Capability = "request_blood"
	CapSearchInventory   Capability = "search_inventory"
	CapViewInventory     Capability = "view_inventory"
	CapReviewRequests    Capability = "review_requests"
	CapManageDonations   Capability = "manage_donations"
	CapManageUsers       Capability = "manage_users"
)

// Has reports whether the named capability is granted. Unknown names are
// never granted.
func (c Capabilities) Has(name Capability) bool {
	switch name {
	case CapScheduleDonations:
		return c.ScheduleDonations
	case CapRequestBlood:
		return c.RequestBlood
	case CapSearchInventory:
		return c.SearchInventory
	case CapViewInventory:
		return c.ViewInventory
	case CapReviewRequests:
		return c.ReviewRequests
	case CapManageDonations:
		return c.ManageDonations
	case CapManageUsers:
		return c.ManageUsers
	}
	return false
}

// Session is the role variant resolved once when a user signs in.
type Session interface {
	UserID() string
	Role() UserRole
	Capabilities() Capabilities
}

type baseSession struct {
	userID string
}

func (s baseSession) UserID() string { return s.userID }

type DonorSession struct{ baseSession }

func (DonorSession) Role() UserRole { return UserRoleDonor }

func (DonorSession) Capabilities() Capabilities {
	return Capabilities{ScheduleDonations: true, SearchInventory: true}
}

type RecipientSession struct{ baseSession }

func (RecipientSession) Role() UserRole { return UserRoleRecipient }

func (RecipientSession) Capabilities() Capabilities {
	return Capabilities{RequestBlood: true, SearchInventory: true}
}

type AdminSession struct{ baseSession }

func (AdminSession) Role() UserRole { return UserRoleAdmin }

func (AdminSession) Capabilities() Capabilities {
	return Capabilities{
		SearchInventory: true,
		ViewInventory:   true,
		ReviewRequests:  true,
		ManageDonations: true,
		ManageUsers:     true,
	}
}

// NewSession resolves the role variant for a user id and role.
func NewSession(userID string, role UserRole) (Session, error) {
	base := baseSession{userID: userID}
	switch role {
	case UserRoleDonor:
		return DonorSession{base}, nil
	case UserRoleRecipient:
		return RecipientSession{base}, nil
	case UserRoleAdmin:
		return AdminSession{base}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}
