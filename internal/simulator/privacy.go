package simulator

import (
	"context"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

// PrivacyAction is the simctl privacy verb
type PrivacyAction string

const (
	PrivacyGrant  PrivacyAction = "grant"
	PrivacyRevoke PrivacyAction = "revoke"
	PrivacyReset  PrivacyAction = "reset"
)

// SetPrivacy applies a privacy action for one service to an app.
// Services must come from domain.KnownPrivacyServices.
func (m *Manager) SetPrivacy(ctx context.Context, udid string, action PrivacyAction, service domain.PrivacyService, bundleID string) error {
	if !domain.IsKnownPrivacyService(string(service)) {
		return fmt.Errorf("unknown privacy service: %s", service)
	}
	args := []string{"privacy", udid, string(action), string(service)}
	if bundleID != "" {
		args = append(args, bundleID)
	}
	_, err := m.simctl(ctx, args...)
	return err
}

// SetPrivacyBatch applies an action to several services, stopping at the
// first failure and reporting which service failed.
func (m *Manager) SetPrivacyBatch(ctx context.Context, udid string, action PrivacyAction, services []domain.PrivacyService, bundleID string) error {
	for _, svc := range services {
		if err := m.SetPrivacy(ctx, udid, action, svc, bundleID); err != nil {
			return fmt.Errorf("%s %s: %w", action, svc, err)
		}
	}
	return nil
}
