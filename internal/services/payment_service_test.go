package services_test

import (
	"context"
	"testing"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_Checkout(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 600, models.UserRoleModel)

	charge, err := env.payment.CreateCheckout(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.NotEmpty(t, charge.ID)
	assert.NotEmpty(t, charge.ConfirmationURL)
	assert.InDelta(t, 100.0, charge.Amount, 0.01)

	// У заказчика свой тариф
	customer := env.createUser(t, 601, models.UserRoleCustomer)
	charge, err = env.payment.CreateCheckout(ctx, customer.ID, models.UserRoleCustomer)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, charge.Amount, 0.01)
}

func TestPayment_Checkout_ViewerHasNoTariff(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, 602, models.UserRoleViewer)
	_, err := env.payment.CreateCheckout(context.Background(), 602, models.UserRoleViewer)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestPayment_Checkout_BlockedUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 603, models.UserRoleModel)
	require.NoError(t, env.identity.Block(ctx, model.ID))

	_, err := env.payment.CreateCheckout(ctx, model.ID, models.UserRoleModel)
	assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
}

func TestPayment_Confirm_GrantsSubscription(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 604, models.UserRoleModel)
	charge, err := env.payment.CreateCheckout(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)

	sub, err := env.payment.ConfirmPayment(ctx, model.ID, models.UserRoleModel, charge.ID)
	require.NoError(t, err)
	assert.Equal(t, charge.ID, sub.PaymentID)

	active, err := env.subscriptions.IsActive(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestPayment_Confirm_Idempotent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 605, models.UserRoleModel)
	charge, err := env.payment.CreateCheckout(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)

	first, err := env.payment.ConfirmPayment(ctx, model.ID, models.UserRoleModel, charge.ID)
	require.NoError(t, err)

	// Повторное подтверждение не плодит вторую подписку
	second, err := env.payment.ConfirmPayment(ctx, model.ID, models.UserRoleModel, charge.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestPayment_Confirm_NotSucceeded(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 606, models.UserRoleModel)
	charge, err := env.payment.CreateCheckout(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)

	env.payments.Status = models.PaymentStatusPending
	_, err = env.payment.ConfirmPayment(ctx, model.ID, models.UserRoleModel, charge.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotSucceeded)

	active, err := env.subscriptions.IsActive(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.False(t, active)
}
