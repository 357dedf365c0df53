package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/logger"
)

type goalGSStore interface {
	Create(ctx context.Context, uid string, g *models.Goal) error
	Get(ctx context.Context, uid, goalID string) (*models.Goal, error)
	List(ctx context.Context, uid string) ([]models.Goal, error)
	Delete(ctx context.Context, uid, goalID string) error
	ApplyMovement(ctx context.Context, uid, goalID string, delta float64, paired *models.Transaction) error
}

type goalService struct {
	store goalGSStore
}

func NewGoalService(store goalGSStore) *goalService {
	return &goalService{store: store}
}

func (s *goalService) Create(ctx context.Context, uid string, req dto.CreateGoalRequest) (*models.Goal, error) {
	g, err := models.NewGoal(uuid.New().String(), req.Name, req.TargetAmount)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, uid, g); err != nil {
		return nil, err
	}
	return g, nil
}

// List returns every goal with display progress: bar percentage capped at
// 100, completion from the uncapped ratio.
func (s *goalService) List(ctx context.Context, uid string) ([]dto.GoalProgress, error) {
	goals, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalProgress, 0, len(goals))
	for _, g := range goals {
		percent := g.CurrentAmount / g.TargetAmount * 100
		out = append(out, dto.GoalProgress{
			Goal:       g,
			BarPercent: min(percent, 100),
			Complete:   percent >= 100,
		})
	}
	return out, nil
}

// Contribute moves money from a regular account into the goal: the balance
// increment and the recording expense transaction (category "Metas") are
// applied in one atomic store operation.
func (s *goalService) Contribute(ctx context.Context, uid, goalID string, req dto.GoalMovementRequest) error {
	if req.Amount <= 0 {
		return errs.NewValidationError("amount must be positive")
	}
	method := models.PaymentMethod(req.PaymentMethod)
	if !validMethod(method) {
		return errs.NewValidationError("invalid payment method")
	}

	g, err := s.store.Get(ctx, uid, goalID)
	if err != nil {
		return err
	}

	paired, err := models.NewTransaction(uuid.New().String(),
		fmt.Sprintf("Aporte na meta %s", g.Name),
		req.Amount, time.Now(), models.TypeExpense,
		models.GoalCategoryName, method, true)
	if err != nil {
		return err
	}

	if err := s.store.ApplyMovement(ctx, uid, goalID, req.Amount, paired); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("goal contribution", "goal_id", goalID, "amount", req.Amount)
	return nil
}

// Withdraw moves money back out of the goal. The fast balance check here
// gives immediate feedback; the authoritative guard runs inside the store
// transaction against the freshly-read balance.
func (s *goalService) Withdraw(ctx context.Context, uid, goalID string, req dto.GoalMovementRequest) error {
	if req.Amount <= 0 {
		return errs.NewValidationError("amount must be positive")
	}

	g, err := s.store.Get(ctx, uid, goalID)
	if err != nil {
		return err
	}
	if req.Amount > g.CurrentAmount {
		return errs.NewInsufficientFundsError("withdrawal exceeds goal balance")
	}

	paired, err := models.NewTransaction(uuid.New().String(),
		fmt.Sprintf("Resgate da meta %s", g.Name),
		req.Amount, time.Now(), models.TypeIncome,
		models.GoalCategoryName, "", true)
	if err != nil {
		return err
	}

	if err := s.store.ApplyMovement(ctx, uid, goalID, -req.Amount, paired); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("goal withdrawal", "goal_id", goalID, "amount", req.Amount)
	return nil
}

func (s *goalService) Delete(ctx context.Context, uid, goalID string) error {
	return s.store.Delete(ctx, uid, goalID)
}
