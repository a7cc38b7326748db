package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/interfaces/http/response"
)

type blueprintService interface {
	CreateBlueprint(ctx context.Context, input *entities.BlueprintInput) (*entities.Blueprint, error)
	ListBlueprints(ctx context.Context) ([]*entities.Blueprint, error)
	GetBlueprint(ctx context.Context, ref string) (*entities.Blueprint, error)
	UpdateBlueprint(ctx context.Context, ref string, input *entities.BlueprintInput) (*entities.Blueprint, error)
	DeleteBlueprint(ctx context.Context, ref string) error
}

type BlueprintHandler struct {
	service blueprintService
}

func NewBlueprintHandler(service blueprintService) *BlueprintHandler {
	return &BlueprintHandler{service: service}
}

type BlueprintRequest struct {
	Name   string                     `json:"name"`
	Fields []entities.FieldDefinition `json:"fields"`
	Tags   []string                   `json:"tags"`
}

func (r BlueprintRequest) toInput() *entities.BlueprintInput {
	return &entities.BlueprintInput{Name: r.Name, Fields: r.Fields, Tags: r.Tags}
}

// CreateBlueprint creates a new blueprint
// POST /api/v1/blueprints
func (h *BlueprintHandler) CreateBlueprint(c *gin.Context) {
	var req BlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("invalid request body").WithDetail("reason", err.Error()))
		return
	}

	blueprint, err := h.service.CreateBlueprint(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, blueprint)
}

// ListBlueprints lists all blueprints newest first
// GET /api/v1/blueprints
func (h *BlueprintHandler) ListBlueprints(c *gin.Context) {
	blueprints, err := h.service.ListBlueprints(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, blueprints, len(blueprints), nil)
}

// GetBlueprint gets a single blueprint
// GET /api/v1/blueprints/:id
func (h *BlueprintHandler) GetBlueprint(c *gin.Context) {
	blueprint, err := h.service.GetBlueprint(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, blueprint)
}

// UpdateBlueprint replaces a blueprint's name, fields and tags
// PUT /api/v1/blueprints/:id
func (h *BlueprintHandler) UpdateBlueprint(c *gin.Context) {
	var req BlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.Validation("invalid request body").WithDetail("reason", err.Error()))
		return
	}

	blueprint, err := h.service.UpdateBlueprint(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, blueprint)
}

// DeleteBlueprint removes a blueprint
// DELETE /api/v1/blueprints/:id
func (h *BlueprintHandler) DeleteBlueprint(c *gin.Context) {
	if err := h.service.DeleteBlueprint(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Blueprint deleted successfully")
}
