package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContractStatus represents the lifecycle status of a contract
type ContractStatus string

const (
	ContractStatusCreated  ContractStatus = "Created"
	ContractStatusApproved ContractStatus = "Approved"
	ContractStatusSent     ContractStatus = "Sent"
	ContractStatusSigned   ContractStatus = "Signed"
	ContractStatusLocked   ContractStatus = "Locked"
	ContractStatusRevoked  ContractStatus = "Revoked"
)

// ContractStatuses lists every status in lifecycle order.
var ContractStatuses = []ContractStatus{
	ContractStatusCreated,
	ContractStatusApproved,
	ContractStatusSent,
	ContractStatusSigned,
	ContractStatusLocked,
	ContractStatusRevoked,
}

// ParseContractStatus matches s exactly against the status enumeration
func ParseContractStatus(s string) (ContractStatus, bool) {
	for _, status := range ContractStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// ContractStatusNames returns the enumeration as plain strings
func ContractStatusNames() []string {
	names := make([]string, 0, len(ContractStatuses))
	for _, status := range ContractStatuses {
		names = append(names, string(status))
	}
	return names
}

// Named listing groups accepted by the contract list filter.
var contractStatusGroups = map[string][]ContractStatus{
	"active":  {ContractStatusCreated, ContractStatusApproved, ContractStatusSent, ContractStatusSigned},
	"pending": {ContractStatusCreated, ContractStatusApproved, ContractStatusSent},
	"signed":  {ContractStatusSigned},
}

// StatusGroup resolves a named listing group. "all" and "" map to no
// restriction.
func StatusGroup(name string) ([]ContractStatus, bool) {
	if name == "" || name == "all" {
		return nil, true
	}
	group, ok := contractStatusGroups[name]
	if !ok {
		return nil, false
	}
	out := make([]ContractStatus, len(group))
	copy(out, group)
	return out, true
}

// HistoryEntry is one immutable audit record of a status change
type HistoryEntry struct {
	Status    ContractStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	ChangedBy ActorSnapshot  `json:"changedBy"`
	Note      string         `json:"note"`
}

// Contract is an instantiation of a blueprint
type Contract struct {
	ID          uuid.UUID         `json:"id"`
	BlueprintID uuid.UUID         `json:"blueprintId"`
	Blueprint   *BlueprintSummary `json:"blueprint,omitempty"`
	Status      ContractStatus    `json:"status"`
	Data        map[string]any    `json:"data"`
	History     []HistoryEntry    `json:"history"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ContractName is the display name derived from the id
func (c Contract) ContractName() string {
	id := c.ID.String()
	return "Contract-" + id[len(id)-6:]
}

// MarshalJSON adds the derived contractName to the wire form.
func (c Contract) MarshalJSON() ([]byte, error) {
	type alias Contract
	return json.Marshal(struct {
		alias
		ContractName string `json:"contractName"`
	}{alias: alias(c), ContractName: c.ContractName()})
}

// LastHistoryEntry returns the most recent history entry, if any
func (c *Contract) LastHistoryEntry() (HistoryEntry, bool) {
	if len(c.History) == 0 {
		return HistoryEntry{}, false
	}
	return c.History[len(c.History)-1], true
}

// CreateContractInput is the payload for instantiating a blueprint
type CreateContractInput struct {
	BlueprintID string         `json:"blueprintId"`
	Data        map[string]any `json:"data"`
}

// TransitionInput is the payload for a status change request
type TransitionInput struct {
	Status string      `json:"status"`
	Note   null.String `json:"note"`
}

// ContractFilter narrows contract listings
type ContractFilter struct {
	Statuses    []ContractStatus
	BlueprintID *uuid.UUID
	Limit       int
	Offset      int
}
