package usecases_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"contractflow.backend/internal/domain/entities"
	"contractflow.backend/internal/usecases"
)

const (
	created  = entities.ContractStatusCreated
	approved = entities.ContractStatusApproved
	sent     = entities.ContractStatusSent
	signed   = entities.ContractStatusSigned
	locked   = entities.ContractStatusLocked
	revoked  = entities.ContractStatusRevoked
)

func TestIsValidTransition_Matrix(t *testing.T) {
	edges := map[entities.ContractStatus][]entities.ContractStatus{
		created:  {approved, revoked},
		approved: {sent},
		sent:     {signed, revoked},
		signed:   {locked},
	}

	for _, from := range entities.ContractStatuses {
		for _, to := range entities.ContractStatuses {
			want := from == to
			for _, allowed := range edges[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equalf(t, want, usecases.IsValidTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range entities.ContractStatuses {
		assert.Equal(t, s == locked || s == revoked, usecases.IsTerminal(s), string(s))
	}
}

func TestRoleAllows_Matrix(t *testing.T) {
	for _, s := range entities.ContractStatuses {
		assert.True(t, usecases.RoleAllows(entities.RoleAdmin, s), string(s))
		assert.Equal(t, s == approved || s == sent, usecases.RoleAllows(entities.RoleApprover, s), string(s))
		assert.Equal(t, s == signed, usecases.RoleAllows(entities.RoleSigner, s), string(s))
		assert.False(t, usecases.RoleAllows("viewer", s), string(s))
		assert.False(t, usecases.RoleAllows("", s), string(s))
	}
}

func TestRoleAllows_IsCaseSensitive(t *testing.T) {
	assert.False(t, usecases.RoleAllows("Admin", created))
}

func TestRolesAllowedFor(t *testing.T) {
	assert.Equal(t, []string{"admin", "approver"}, usecases.RolesAllowedFor(approved))
	assert.Equal(t, []string{"admin", "signer"}, usecases.RolesAllowedFor(signed))
	assert.Equal(t, []string{"admin"}, usecases.RolesAllowedFor(locked))
	assert.Equal(t, []string{"admin"}, usecases.RolesAllowedFor(revoked))
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []entities.ContractStatus{approved, revoked}, usecases.NextStatuses(created, entities.RoleAdmin))
	assert.Equal(t, []entities.ContractStatus{approved}, usecases.NextStatuses(created, entities.RoleApprover))
	assert.Empty(t, usecases.NextStatuses(created, entities.RoleSigner))
	assert.Equal(t, []entities.ContractStatus{signed}, usecases.NextStatuses(sent, entities.RoleSigner))
	assert.Empty(t, usecases.NextStatuses(locked, entities.RoleAdmin))
	assert.Empty(t, usecases.NextStatuses(revoked, entities.RoleAdmin))
}

func genStatus() gopter.Gen {
	values := make([]interface{}, 0, len(entities.ContractStatuses))
	for _, s := range entities.ContractStatuses {
		values = append(values, s)
	}
	return gen.OneConstOf(values...)
}

func genRole() gopter.Gen {
	return gen.OneConstOf(entities.RoleAdmin, entities.RoleApprover, entities.RoleSigner, entities.Role("viewer"))
}

func TestTransitionPolicyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("terminal statuses have no outgoing edges", prop.ForAll(
		func(from, to entities.ContractStatus) bool {
			if !usecases.IsTerminal(from) || from == to {
				return true
			}
			return !usecases.IsValidTransition(from, to)
		},
		genStatus(), genStatus(),
	))

	properties.Property("only admin may target Locked or Revoked", prop.ForAll(
		func(role entities.Role, to entities.ContractStatus) bool {
			if to != locked && to != revoked {
				return true
			}
			return usecases.RoleAllows(role, to) == (role == entities.RoleAdmin)
		},
		genRole(), genStatus(),
	))

	properties.Property("next statuses are legal and permitted", prop.ForAll(
		func(from entities.ContractStatus, role entities.Role) bool {
			for _, to := range usecases.NextStatuses(from, role) {
				if to == from || !usecases.IsValidTransition(from, to) || !usecases.RoleAllows(role, to) {
					return false
				}
			}
			return true
		},
		genStatus(), genRole(),
	))

	properties.Property("the lifecycle never returns to Created", prop.ForAll(
		func(from entities.ContractStatus) bool {
			return from == created || !usecases.IsValidTransition(from, created)
		},
		genStatus(),
	))

	properties.TestingRun(t)
}
