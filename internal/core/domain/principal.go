package domain

const (
	RoleContractor = "contractor"
	RoleManager    = "manager"
)

// Principal is the caller's identity and role as supplied by the external
// authentication collaborator. The engine trusts it as given and never reads
// ambient identity: every operation takes a Principal explicitly.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsManager reports whether the principal holds approve/reject rights.
func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
