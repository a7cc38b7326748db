package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/domain/repositories"
	"contractflow.backend/pkg/logger"
	"contractflow.backend/pkg/metrics"
	"contractflow.backend/pkg/utils"
)

// ContractUsecase drives contract creation and the status lifecycle
type ContractUsecase struct {
	contractRepo  repositories.ContractRepository
	blueprintRepo repositories.BlueprintRepository
	uow           repositories.UnitOfWork
	now           func() time.Time
}

// NewContractUsecase creates a new contract usecase
func NewContractUsecase(
	contractRepo repositories.ContractRepository,
	blueprintRepo repositories.BlueprintRepository,
	uow repositories.UnitOfWork,
) *ContractUsecase {
	return &ContractUsecase{
		contractRepo:  contractRepo,
		blueprintRepo: blueprintRepo,
		uow:           uow,
		now:           time.Now,
	}
}

// CreateContract instantiates a blueprint. Data is filtered to the
// blueprint's field labels and the contract starts at Created with a single
// seed history entry.
func (u *ContractUsecase) CreateContract(ctx context.Context, input *entities.CreateContractInput, actor entities.Actor) (*entities.Contract, error) {
	if input == nil {
		input = &entities.CreateContractInput{}
	}
	blueprintID, err := parseBlueprintRef(input.BlueprintID)
	if err != nil {
		metrics.RecordContractCreated(metrics.OutcomeRejected)
		return nil, err
	}

	var contract *entities.Contract
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		blueprint, err := u.blueprintRepo.GetByID(txCtx, blueprintID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("blueprint not found")
			}
			return err
		}

		data, err := ValidateFieldData(blueprint, input.Data)
		if err != nil {
			return err
		}

		now := u.now()
		contract = &entities.Contract{
			ID:          utils.GenerateUUIDv7(),
			BlueprintID: blueprint.ID,
			Blueprint:   blueprint.Summary(),
			Status:      entities.ContractStatusCreated,
			Data:        data,
			History: []entities.HistoryEntry{{
				Status:    entities.ContractStatusCreated,
				Timestamp: now,
				ChangedBy: actor.Snapshot(),
				Note:      "",
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return u.contractRepo.Create(txCtx, contract)
	})
	if err != nil {
		metrics.RecordContractCreated(metrics.OutcomeRejected)
		logger.Warn(ctx, "Contract creation rejected",
			zap.String("blueprint_id", blueprintID.String()),
			zap.String("actor_id", actor.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RecordContractCreated(metrics.OutcomeApplied)
	logger.Info(ctx, "Contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("blueprint_id", contract.BlueprintID.String()),
		zap.String("actor_id", actor.ID),
	)
	return contract, nil
}

// ListContracts returns contracts newest first together with the total count
func (u *ContractUsecase) ListContracts(ctx context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error) {
	return u.contractRepo.List(ctx, filter)
}

// GetContract resolves a contract reference
func (u *ContractUsecase) GetContract(ctx context.Context, ref string) (*entities.Contract, error) {
	id, err := parseContractRef(ref)
	if err != nil {
		return nil, err
	}
	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapContractLookupError(err)
	}
	return contract, nil
}

// AvailableTransitions returns the contract's current status and the
// statuses actor may move it into next
func (u *ContractUsecase) AvailableTransitions(ctx context.Context, ref string, actor entities.Actor) (entities.ContractStatus, []entities.ContractStatus, error) {
	contract, err := u.GetContract(ctx, ref)
	if err != nil {
		return "", nil, err
	}
	return contract.Status, NextStatuses(contract.Status, actor.Role), nil
}

// TransitionStatus moves a contract to input.Status on behalf of actor.
//
// Checks run in a fixed order and the first failure wins: unknown status,
// malformed or unknown contract, terminal current status, illegal graph
// edge, role permission. A self-transition passes the graph check, still
// needs role permission, and leaves history untouched.
func (u *ContractUsecase) TransitionStatus(ctx context.Context, ref string, input *entities.TransitionInput, actor entities.Actor) (*entities.Contract, error) {
	if input == nil || strings.TrimSpace(input.Status) == "" {
		return nil, domainerrors.Validation("status is required")
	}
	target, ok := entities.ParseContractStatus(input.Status)
	if !ok {
		return nil, domainerrors.InvalidStatusValue(input.Status, entities.ContractStatusNames())
	}

	id, err := parseContractRef(ref)
	if err != nil {
		return nil, err
	}

	var (
		contract *entities.Contract
		previous entities.ContractStatus
	)
	err = u.uow.Do(u.uow.WithLock(ctx), func(txCtx context.Context) error {
		var err error
		contract, err = u.contractRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return mapContractLookupError(err)
		}
		previous = contract.Status

		if err := checkTransition(previous, target, actor.Role); err != nil {
			return err
		}

		var entry *entities.HistoryEntry
		if target != previous {
			entry = &entities.HistoryEntry{
				Status:    target,
				Timestamp: u.nextTimestamp(contract),
				ChangedBy: actor.Snapshot(),
				Note:      input.Note.String,
			}
		}

		if err := u.contractRepo.SaveStatus(txCtx, contract.ID, previous, target, entry); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return domainerrors.Conflict("contract status was changed concurrently").
					WithDetail("currentStatus", string(previous))
			}
			return err
		}

		contract.Status = target
		if entry != nil {
			contract.History = append(contract.History, *entry)
			contract.UpdatedAt = entry.Timestamp
		}
		return nil
	})
	if err != nil {
		from := string(previous)
		if from == "" {
			from = "unknown"
		}
		metrics.RecordTransition(from, string(target), metrics.OutcomeRejected)
		logger.Warn(ctx, "Contract transition rejected",
			zap.String("contract_id", id.String()),
			zap.String("from", from),
			zap.String("to", string(target)),
			zap.String("role", string(actor.Role)),
			zap.Error(err),
		)
		return nil, err
	}

	outcome := metrics.OutcomeApplied
	if target == previous {
		outcome = metrics.OutcomeNoop
	}
	metrics.RecordTransition(string(previous), string(target), outcome)
	logger.Info(ctx, "Contract status changed",
		zap.String("contract_id", contract.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
		zap.String("actor_id", actor.ID),
		zap.String("role", string(actor.Role)),
		zap.String("outcome", outcome),
	)
	return contract, nil
}

// checkTransition applies the lifecycle rules in precedence order
func checkTransition(from, to entities.ContractStatus, role entities.Role) error {
	if IsTerminal(from) {
		return domainerrors.Immutable(string(from)).WithDetail("attemptedStatus", string(to))
	}
	if !IsValidTransition(from, to) {
		return domainerrors.InvalidTransition(string(from), string(to))
	}
	if !RoleAllows(role, to) {
		return domainerrors.PermissionDenied(string(role), string(to), RolesAllowedFor(to)).
			WithDetail("currentStatus", string(from))
	}
	return nil
}

// nextTimestamp keeps history timestamps non-decreasing even if the clock steps back
func (u *ContractUsecase) nextTimestamp(contract *entities.Contract) time.Time {
	ts := u.now()
	if last, ok := contract.LastHistoryEntry(); ok && ts.Before(last.Timestamp) {
		return last.Timestamp
	}
	return ts
}

func parseContractRef(ref string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return uuid.Nil, domainerrors.InvalidReference("invalid contract ID format")
	}
	return id, nil
}

func mapContractLookupError(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("contract not found")
	}
	return err
}
