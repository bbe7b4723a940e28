package config

import "bloodbank-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic     SecurityLevel = iota // No authentication
	SecurityAccess                          // Access token required
	SecurityCapability                      // Access token plus a capability
)

type EndpointSecurity struct {
	Level      SecurityLevel
	Capability domain.Capability
}

func public() EndpointSecurity { return EndpointSecurity{Level: SecurityPublic} }
func access() EndpointSecurity { return EndpointSecurity{Level: SecurityAccess} }
func requires(c domain.Capability) EndpointSecurity {
	return EndpointSecurity{Level: SecurityCapability, Capability: c}
}

// EndpointSecurityConfig maps "METHOD path-template" to what the caller needs.
var EndpointSecurityConfig = map[string]EndpointSecurity{
	"POST /api/v1/auth/login":    public(),
	"POST /api/v1/auth/register": public(),

	"GET /api/v1/dashboard": access(),

	"GET /api/v1/inventory":         requires(domain.CapViewInventory),
	"GET /api/v1/inventory/summary": requires(domain.CapViewInventory),
	"GET /api/v1/inventory/search":  requires(domain.CapSearchInventory),

	// Listing is scoped by role inside the handler.
	"GET /api/v1/requests":                 access(),
	"POST /api/v1/requests":                requires(domain.CapRequestBlood),
	"POST /api/v1/requests/{id}/{action}":  requires(domain.CapReviewRequests),
	"GET /api/v1/donations":                access(),
	"POST /api/v1/donations":               requires(domain.CapScheduleDonations),
	"GET /api/v1/donations/eligibility":    requires(domain.CapScheduleDonations),
	"POST /api/v1/donations/{id}/complete": requires(domain.CapManageDonations),
	"POST /api/v1/donations/{id}/cancel":   access(),
	"GET /api/v1/users":                    requires(domain.CapManageUsers),
	"GET /api/v1/notifications":            access(),
	"POST /api/v1/notifications/{id}/read": access(),
}

// GetEndpointSecurity returns the requirement for a route. Unknown routes
// require an access token.
func GetEndpointSecurity(method, pathTemplate string) EndpointSecurity {
	if sec, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return sec
	}
	return access()
}
