package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/interfaces/http/middleware"
	"contractflow.backend/internal/interfaces/http/response"
	"contractflow.backend/pkg/utils"
)

type contractService interface {
	CreateContract(ctx context.Context, input *entities.CreateContractInput, actor entities.Actor) (*entities.Contract, error)
	ListContracts(ctx context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error)
	GetContract(ctx context.Context, ref string) (*entities.Contract, error)
	TransitionStatus(ctx context.Context, ref string, input *entities.TransitionInput, actor entities.Actor) (*entities.Contract, error)
	AvailableTransitions(ctx context.Context, ref string, actor entities.Actor) (entities.ContractStatus, []entities.ContractStatus, error)
}

type ContractHandler struct {
	service contractService
}

func NewContractHandler(service contractService) *ContractHandler {
	return &ContractHandler{service: service}
}

type CreateContractRequest struct {
	BlueprintID string         `json:"blueprintId"`
	Data        map[string]any `json:"data"`
}

type UpdateStatusRequest struct {
	Status string      `json:"status"`
	Note   null.String `json:"note"`
}

// CreateContract instantiates a blueprint
// POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("invalid request body").WithDetail("reason", err.Error()))
		return
	}

	contract, err := h.service.CreateContract(c.Request.Context(), &entities.CreateContractInput{
		BlueprintID: req.BlueprintID,
		Data:        req.Data,
	}, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contract)
}

// ListContracts lists contracts newest first
// GET /api/v1/contracts?filter=pending&status=Sent&blueprintId=...&page=1&limit=20
func (h *ContractHandler) ListContracts(c *gin.Context) {
	filter, err := parseContractFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)
	filter.Limit, filter.Offset = pagination.Window()

	contracts, total, err := h.service.ListContracts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	var meta *utils.PaginationMeta
	if pagination.Paged() {
		m := utils.CalculateMeta(total, pagination)
		meta = &m
	}
	response.List(c, contracts, len(contracts), meta)
}

// GetContract gets a single contract with its history
// GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.service.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}

// UpdateStatus moves a contract along its lifecycle
// PATCH /api/v1/contracts/:id/status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("invalid request body").WithDetail("reason", err.Error()))
		return
	}

	contract, err := h.service.TransitionStatus(c.Request.Context(), c.Param("id"), &entities.TransitionInput{
		Status: req.Status,
		Note:   req.Note,
	}, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}

// ListTransitions returns the statuses the caller may move the contract into
// GET /api/v1/contracts/:id/transitions
func (h *ContractHandler) ListTransitions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	current, next, err := h.service.AvailableTransitions(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"currentStatus":        current,
		"role":                 actor.Role,
		"availableTransitions": next,
	})
}

func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("caller identity is required"))
		return entities.Actor{}, false
	}
	return actor, true
}

// parseContractFilter reads the listing query. An explicit status takes
// precedence over a named filter group.
func parseContractFilter(c *gin.Context) (entities.ContractFilter, error) {
	var filter entities.ContractFilter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := entities.ParseContractStatus(raw)
		if !ok {
			return filter, domainerrors.InvalidStatusValue(raw, entities.ContractStatusNames())
		}
		filter.Statuses = []entities.ContractStatus{status}
	} else {
		group := strings.ToLower(strings.TrimSpace(c.Query("filter")))
		statuses, ok := entities.StatusGroup(group)
		if !ok {
			return filter, domainerrors.Validation("invalid filter. Must be one of: all, active, pending, signed").
				WithDetail("filter", group)
		}
		filter.Statuses = statuses
	}

	if raw := strings.TrimSpace(c.Query("blueprintId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domainerrors.InvalidReference("invalid blueprint ID format")
		}
		filter.BlueprintID = &id
	}

	return filter, nil
}
