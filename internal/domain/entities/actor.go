package entities

// Role is the caller's authorization role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
	RoleSigner   Role = "signer"
)

// Actor is the identity supplied by the caller on every request.
// The role is trusted as given.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Snapshot captures the actor identity by value for audit history
func (a Actor) Snapshot() ActorSnapshot {
	return ActorSnapshot{ID: a.ID, Name: a.Name}
}

// ActorSnapshot is the identity recorded on a history entry
type ActorSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
