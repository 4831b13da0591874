package services_test

import (
	"context"
	"testing"
	"time"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_GrantModel_SetsPrivilege(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 100, models.UserRoleModel)
	assert.False(t, model.IsPrivileged)

	sub, err := env.subscriptions.Grant(ctx, model.ID, models.UserRoleModel, 30, "pay-1")
	require.NoError(t, err)
	assert.True(t, sub.IsLive(time.Now()))

	// Подписка модели включает привилегированный статус
	updated, err := env.identity.Get(ctx, model.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPrivileged)
}

func TestSubscription_GrantCustomer_DoesNotTouchPrivilege(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 101, models.UserRoleCustomer)
	_, err := env.subscriptions.Grant(ctx, customer.ID, models.UserRoleCustomer, 30, "pay-2")
	require.NoError(t, err)

	updated, err := env.identity.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPrivileged)
}

func TestSubscription_Grant_RejectsViewerRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, 102, models.UserRoleViewer)
	_, err := env.subscriptions.Grant(context.Background(), 102, models.UserRoleViewer, 30, "pay-3")
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestSubscription_Trial_OncePerUserAndRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 103, models.UserRoleModel)

	sub, err := env.subscriptions.ActivateTrial(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.Equal(t, models.TrialPaymentID, sub.PaymentID)

	// Повторный триал по той же роли запрещен, даже после истечения
	env.expireSubscriptions(t, model.ID)
	_, err = env.subscriptions.ActivateTrial(ctx, model.ID, models.UserRoleModel)
	assert.ErrorIs(t, err, apperrors.ErrTrialAlreadyUsed)
}

func TestSubscription_Trial_SeparatePerRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	// Пользователь сменил роль: триал заказчика не сгорает от триала модели
	user := env.createUser(t, 104, models.UserRoleModel)
	_, err := env.subscriptions.ActivateTrial(ctx, user.ID, models.UserRoleModel)
	require.NoError(t, err)

	_, err = env.subscriptions.ActivateTrial(ctx, user.ID, models.UserRoleCustomer)
	assert.NoError(t, err)
}

func TestSubscription_IsActive_ExpiredRevokesPrivilege(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 105, models.UserRoleModel)
	env.subscribe(t, model.ID, models.UserRoleModel)

	active, err := env.subscriptions.IsActive(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.True(t, active)

	env.expireSubscriptions(t, model.ID)

	// Истечение ловится лениво при первой проверке
	active, err = env.subscriptions.IsActive(ctx, model.ID, models.UserRoleModel)
	require.NoError(t, err)
	assert.False(t, active)

	updated, err := env.identity.Get(ctx, model.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPrivileged)
}

func TestSubscription_GetActive_NoneReturnsTypedError(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, 106, models.UserRoleCustomer)
	_, err := env.subscriptions.GetActive(context.Background(), 106, models.UserRoleCustomer)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)
}

func TestSubscription_Info(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 107, models.UserRoleCustomer)

	info, err := env.subscriptions.Info(ctx, customer.ID, models.UserRoleCustomer)
	require.NoError(t, err)
	assert.False(t, info.HasSubscription)
	assert.Equal(t, 0, info.DaysLeft)

	env.subscribe(t, customer.ID, models.UserRoleCustomer)

	info, err = env.subscriptions.Info(ctx, customer.ID, models.UserRoleCustomer)
	require.NoError(t, err)
	assert.True(t, info.HasSubscription)
	assert.Equal(t, 29, info.DaysLeft)
	require.NotNil(t, info.EndDate)
}
