package usecases

import (
	"contractflow.backend/internal/domain/entities"
)

// validTransitions is the contract lifecycle graph. A status missing from a
// row is not reachable from that row's key.
var validTransitions = map[entities.ContractStatus][]entities.ContractStatus{
	entities.ContractStatusCreated:  {entities.ContractStatusApproved, entities.ContractStatusRevoked},
	entities.ContractStatusApproved: {entities.ContractStatusSent},
	entities.ContractStatusSent:     {entities.ContractStatusSigned, entities.ContractStatusRevoked},
	entities.ContractStatusSigned:   {entities.ContractStatusLocked},
	entities.ContractStatusLocked:   {},
	entities.ContractStatusRevoked:  {},
}

// rolePermissions maps a role to the target statuses it may request.
// Roles absent from the table may request nothing.
var rolePermissions = map[entities.Role][]entities.ContractStatus{
	entities.RoleAdmin:    entities.ContractStatuses,
	entities.RoleApprover: {entities.ContractStatusApproved, entities.ContractStatusSent},
	entities.RoleSigner:   {entities.ContractStatusSigned},
}

// IsTerminal reports whether no further transitions are allowed from status
func IsTerminal(status entities.ContractStatus) bool {
	return status == entities.ContractStatusLocked || status == entities.ContractStatusRevoked
}

// IsValidTransition reports whether the graph permits from -> to.
// A self-transition is always valid.
func IsValidTransition(from, to entities.ContractStatus) bool {
	if from == to {
		return true
	}
	return containsStatus(validTransitions[from], to)
}

// RoleAllows reports whether role may move a contract into target
func RoleAllows(role entities.Role, target entities.ContractStatus) bool {
	return containsStatus(rolePermissions[role], target)
}

// RolesAllowedFor lists the roles that may request target, in table order
func RolesAllowedFor(target entities.ContractStatus) []string {
	roles := make([]string, 0, len(rolePermissions))
	for _, role := range []entities.Role{entities.RoleAdmin, entities.RoleApprover, entities.RoleSigner} {
		if RoleAllows(role, target) {
			roles = append(roles, string(role))
		}
	}
	return roles
}

// NextStatuses returns the statuses role may move a contract at from into,
// excluding the self-transition.
func NextStatuses(from entities.ContractStatus, role entities.Role) []entities.ContractStatus {
	next := make([]entities.ContractStatus, 0)
	if IsTerminal(from) {
		return next
	}
	for _, to := range validTransitions[from] {
		if RoleAllows(role, to) {
			next = append(next, to)
		}
	}
	return next
}

func containsStatus(statuses []entities.ContractStatus, target entities.ContractStatus) bool {
	for _, s := range statuses {
		if s == target {
			return true
		}
	}
	return false
}
