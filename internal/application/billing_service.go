package application

import (
	"context"
	"fmt"
	"strconv"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// BillingService manages the recurring-charge subscription lifecycle.
// Every provider call is a single attempt; local shop state is only written
// after the provider confirms success, so a failed call never leaves the
// record half-updated.
type BillingService struct {
	shops     ports.ShopRepository
	billing   ports.ShopifyBilling
	plans     *domain.PlanCatalog
	returnURL string
	logger    zerolog.Logger
}

// NewBillingService creates the billing controller. returnURL is where the
// provider sends the merchant after approving a charge.
func NewBillingService(
	shops ports.ShopRepository,
	billing ports.ShopifyBilling,
	plans *domain.PlanCatalog,
	returnURL string,
	logger zerolog.Logger,
) *BillingService {
	return &BillingService{
		shops:     shops,
		billing:   billing,
		plans:     plans,
		returnURL: returnURL,
		logger:    logger,
	}
}

// Subscribe creates a recurring charge for the given plan and returns the
// provider's confirmation URL. The shop is left in status pending; only the
// provider-confirmed callback promotes it to active.
func (s *BillingService) Subscribe(ctx context.Context, shop *domain.Shop, planID string) (string, error) {
	plan, ok := s.plans.Get(planID)
	if !ok {
		return "", domain.NewValidation("invalid plan")
	}

	charge, err := s.billing.CreateRecurringCharge(ctx, shop.Domain, shop.AccessToken, domain.ChargeRequest{
		Name:      plan.Name,
		Price:     plan.Price,
		TrialDays: plan.TrialDays,
		ReturnURL: s.returnURL,
		Test:      plan.Test,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop.Domain).Str("plan", planID).Msg("Failed to create recurring charge")
		return "", err
	}

	billingID := strconv.FormatInt(charge.ID, 10)
	tier := domain.SubscriptionTier(plan.ID)
	if err := s.shops.UpdateSubscription(ctx, shop.ID, tier, domain.StatusPending, billingID); err != nil {
		return "", fmt.Errorf("failed to store subscription: %w", err)
	}

	shop.Tier = tier
	shop.Status = domain.StatusPending
	shop.BillingID = billingID

	s.logger.Info().
		Str("shop", shop.Domain).
		Str("plan", planID).
		Int64("chargeId", charge.ID).
		Msg("Subscription created, awaiting approval")

	return charge.ConfirmationURL, nil
}

// Confirm fetches the charge after the merchant returns from the provider's
// approval page and writes its status verbatim into the shop record.
func (s *BillingService) Confirm(ctx context.Context, shop *domain.Shop, chargeID int64) error {
	if chargeID == 0 {
		return domain.NewValidation("charge_id is required")
	}

	charge, err := s.billing.GetRecurringCharge(ctx, shop.Domain, shop.AccessToken, chargeID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop.Domain).Int64("chargeId", chargeID).Msg("Failed to fetch charge status")
		return err
	}

	status := domain.SubscriptionStatus(charge.Status)
	if err := s.shops.UpdateStatus(ctx, shop.ID, status); err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	shop.Status = status

	s.logger.Info().
		Str("shop", shop.Domain).
		Int64("chargeId", chargeID).
		Str("status", charge.Status).
		Msg("Subscription status synchronized")

	return nil
}

// Cancel deletes the charge at the provider, then unconditionally resets the
// shop to the free tier. When the provider call fails, local state is left
// untouched; there is no local-only soft cancel.
func (s *BillingService) Cancel(ctx context.Context, shop *domain.Shop) error {
	if !shop.Connected() || shop.BillingID == "" {
		return domain.NewUnauthorized("no active subscription")
	}

	chargeID, err := strconv.ParseInt(shop.BillingID, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed billing reference %q: %w", shop.BillingID, err)
	}

	if err := s.billing.CancelRecurringCharge(ctx, shop.Domain, shop.AccessToken, chargeID); err != nil {
		s.logger.Error().Err(err).Str("shop", shop.Domain).Int64("chargeId", chargeID).Msg("Failed to cancel recurring charge")
		return err
	}

	if err := s.shops.UpdateSubscription(ctx, shop.ID, domain.TierFree, domain.StatusCanceled, ""); err != nil {
		return fmt.Errorf("failed to reset subscription: %w", err)
	}

	shop.Tier = domain.TierFree
	shop.Status = domain.StatusCanceled
	shop.BillingID = ""

	s.logger.Info().
		Str("shop", shop.Domain).
		Int64("chargeId", chargeID).
		Msg("Subscription canceled")

	return nil
}

// Plans exposes the static catalog for the subscription settings page.
func (s *BillingService) Plans() []domain.Plan {
	return s.plans.List()
}
