package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarroquin/freightops-backend/pkg/db/models"
	"github.com/dmarroquin/freightops-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
	"github.com/dmarroquin/freightops-backend/pkg/notify"
)

// MinCallAttemptsForHandoff gates the sales-to-dispatch handoff.
const MinCallAttemptsForHandoff = 3

const (
	reasonInsufficientCalls = "INSUFFICIENT_CALL_ATTEMPTS"
	reasonMissingMCNumber   = "MISSING_MC_NUMBER"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the lead lifecycle state machine.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Transition(ctx context.Context, input TransitionInput) (*models.Lead, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier notify.Notifier
	logg     *logger.Logger
}

// NewService wires the lead lifecycle service.
func NewService(repo Repository, tx txRunner, notifier notify.Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &service{repo: repo, tx: tx, notifier: notifier, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lead")
	}
	return lead, nil
}

// Transition moves a lead to the target status. Guards run before any
// mutation; on success the status change, first-entry timestamp, activity
// entry and (for hand_to_dispatch) the handoff row commit atomically.
func (s *service) Transition(ctx context.Context, input TransitionInput) (*models.Lead, error) {
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid lead status %q", input.Target))
	}

	lead, err := s.Get(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	prev := lead.Status
	if !prev.CanTransitionTo(input.Target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move lead from %s to %s", prev, input.Target)).
			WithDetails(map[string]any{
				"current_status":   prev.String(),
				"requested_status": input.Target.String(),
				"terminal":         prev.IsTerminal(),
			})
	}

	if input.Target == enums.LeadStatusHandToDispatch {
		if err := checkHandoffGuards(lead); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	fields := map[string]any{"status": input.Target}
	stampFirstEntry(lead, input.Target, now, fields)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateFields(ctx, lead.ID, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update lead status")
		}

		prevCopy, nextCopy := prev, input.Target
		activity := &models.LeadActivity{
			LeadID:     lead.ID,
			ActorID:    input.ActorID,
			Type:       enums.LeadActivityStatusChange,
			PrevStatus: &prevCopy,
			NextStatus: &nextCopy,
			Notes:      input.Notes,
		}
		if err := repo.AppendActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append lead activity")
		}

		if input.Target == enums.LeadStatusHandToDispatch {
			handoff := &models.LeadHandoff{
				LeadID:      lead.ID,
				SalesRepID:  input.ActorID,
				HandoffDate: now,
				Status:      enums.HandoffStatusPending,
			}
			if err := repo.CreateHandoff(ctx, handoff); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead handoff")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lead.Status = input.Target
	applyStamps(lead, fields)

	s.publishStatusChange(ctx, lead, prev, input)
	return lead, nil
}

func checkHandoffGuards(lead *models.Lead) error {
	if lead.CallAttempts < MinCallAttemptsForHandoff {
		return pkgerrors.New(pkgerrors.CodePrecondition,
			"lead needs more call attempts before dispatch handoff").
			WithDetails(map[string]any{
				"reason":                 reasonInsufficientCalls,
				"current_call_attempts":  lead.CallAttempts,
				"required_call_attempts": MinCallAttemptsForHandoff,
			})
	}
	if !lead.HasMCNumber() {
		return pkgerrors.New(pkgerrors.CodePrecondition,
			"lead needs a motor-carrier number before dispatch handoff").
			WithDetails(map[string]any{
				"reason":    reasonMissingMCNumber,
				"mc_number": lead.MCNumber,
			})
	}
	return nil
}

// stampFirstEntry records when a lead first reaches a milestone status.
// Re-entry through a later transition never overwrites the original stamp.
func stampFirstEntry(lead *models.Lead, target enums.LeadStatus, now time.Time, fields map[string]any) {
	switch target {
	case enums.LeadStatusInProgress:
		if lead.InProgressAt == nil {
			fields["in_progress_at"] = now
		}
	case enums.LeadStatusHandToDispatch:
		if lead.HandToDispatchAt == nil {
			fields["hand_to_dispatch_at"] = now
		}
	case enums.LeadStatusActive:
		if lead.ActivatedAt == nil {
			fields["activated_at"] = now
		}
	}
}

func applyStamps(lead *models.Lead, fields map[string]any) {
	if v, ok := fields["in_progress_at"].(time.Time); ok {
		lead.InProgressAt = &v
	}
	if v, ok := fields["hand_to_dispatch_at"].(time.Time); ok {
		lead.HandToDispatchAt = &v
	}
	if v, ok := fields["activated_at"].(time.Time); ok {
		lead.ActivatedAt = &v
	}
}

func (s *service) publishStatusChange(ctx context.Context, lead *models.Lead, prev enums.LeadStatus, input TransitionInput) {
	payload := statusChangedPayload{
		LeadID:     lead.ID,
		ActorID:    input.ActorID,
		PrevStatus: prev,
		NextStatus: lead.Status,
	}
	for _, name := range []string{"lead.updated", "lead.status_changed"} {
		event, err := notify.NewEvent(name, notify.AudienceOrg, lead.OrgID.String(), payload)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "build lead event", err)
			}
			continue
		}
		if err := s.notifier.Publish(ctx, event); err != nil && s.logg != nil {
			s.logg.Error(ctx, fmt.Sprintf("publish %s", name), err)
		}
	}
}
