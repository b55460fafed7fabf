package policy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

type PolicyServiceImpl struct {
	tx              database.Transactor
	configRepo      policy.SystemConfigRepository
	defaultSeedMode policy.SeedMode
}

func NewPolicyService(tx database.Transactor, configRepo policy.SystemConfigRepository, defaultSeedMode policy.SeedMode) policy.PolicyService {
	if !defaultSeedMode.IsValid() {
		defaultSeedMode = policy.SeedModeFillMissing
	}
	return &PolicyServiceImpl{
		tx:              tx,
		configRepo:      configRepo,
		defaultSeedMode: defaultSeedMode,
	}
}

// Initialize implements policy.PolicyService.
func (s *PolicyServiceImpl) Initialize(ctx context.Context, req policy.InitializeRequest) ([]policy.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	mode := s.defaultSeedMode
	if req.Mode != nil {
		mode = policy.SeedMode(*req.Mode)
	}

	seeded := make([]policy.ConfigResponse, 0, len(policy.Definitions))
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, def := range policy.Definitions {
			var (
				row policy.SystemConfig
				err error
			)
			switch mode {
			case policy.SeedModeOverwrite:
				row, err = s.configRepo.Upsert(txCtx, def.Key, def.Default)
			default:
				row, err = s.configRepo.InsertIfAbsent(txCtx, def.Key, def.Default)
			}
			if err != nil {
				return fmt.Errorf("seed %s: %w", def.Key, err)
			}
			seeded = append(seeded, toResponse(row))
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to initialize system config", "mode", mode, "error", err)
		return nil, err
	}

	slog.Info("system config initialized", "mode", mode, "keys", len(seeded))
	return seeded, nil
}

// List implements policy.PolicyService.
func (s *PolicyServiceImpl) List(ctx context.Context) ([]policy.ConfigResponse, error) {
	rows, err := s.configRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list system config: %w", err)
	}

	out := make([]policy.ConfigResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResponse(row))
	}
	return out, nil
}

// Get implements policy.PolicyService.
func (s *PolicyServiceImpl) Get(ctx context.Context, key string) (policy.ConfigResponse, error) {
	row, err := s.configRepo.GetByKey(ctx, key)
	if err != nil {
		return policy.ConfigResponse{}, err
	}
	return toResponse(row), nil
}

// Update implements policy.PolicyService. A documented key that was never
// seeded is created; an unknown key must exist. The change is rolled back
// when it leaves the policy inconsistent, such as office_end_time before
// office_start_time.
func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdateConfigRequest) (policy.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.ConfigResponse{}, err
	}

	var updated policy.SystemConfig
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.configRepo.Update(txCtx, req.Key, req.Value)
		if errors.Is(err, policy.ErrConfigNotFound) {
			if _, documented := policy.Lookup(req.Key); documented {
				updated, err = s.configRepo.Upsert(txCtx, req.Key, req.Value)
			}
		}
		if err != nil {
			return err
		}

		if _, err := s.snapshot(txCtx); err != nil {
			var cfgErr *policy.ConfigurationError
			if errors.As(err, &cfgErr) {
				return validator.ValidationErrors{{Field: "value", Message: cfgErr.Error()}}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return policy.ConfigResponse{}, err
	}

	slog.Info("system config updated", "key", req.Key, "value", req.Value)
	return toResponse(updated), nil
}

// Delete implements policy.PolicyService. Deleting a documented key makes it
// fall back to its default.
func (s *PolicyServiceImpl) Delete(ctx context.Context, key string) error {
	if err := s.configRepo.Delete(ctx, key); err != nil {
		return err
	}
	slog.Info("system config deleted", "key", key)
	return nil
}

// Snapshot implements policy.PolicyService.
func (s *PolicyServiceImpl) Snapshot(ctx context.Context) (policy.Snapshot, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		var cfgErr *policy.ConfigurationError
		if errors.As(err, &cfgErr) {
			slog.Error("system config is invalid", "key", cfgErr.Key, "error", err)
		}
		return policy.Snapshot{}, err
	}
	return snap, nil
}

func (s *PolicyServiceImpl) snapshot(ctx context.Context) (policy.Snapshot, error) {
	rows, err := s.configRepo.ListAll(ctx)
	if err != nil {
		return policy.Snapshot{}, fmt.Errorf("failed to read system config: %w", err)
	}

	values := make(policy.Values, len(rows))
	for _, row := range rows {
		values[row.ConfigKey] = row.ConfigValue
	}
	return policy.NewSnapshot(values)
}

func toResponse(row policy.SystemConfig) policy.ConfigResponse {
	return policy.ConfigResponse{
		ID:          row.ID,
		ConfigKey:   row.ConfigKey,
		ConfigValue: row.ConfigValue,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   row.UpdatedAt.Format(time.RFC3339),
	}
}
