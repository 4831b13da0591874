package services_test

import (
	"context"
	"testing"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/services"
	"beautymatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequestForm() services.RequestForm {
	return services.RequestForm{
		Category:          "Маникюр",
		City:              "Алматы",
		District:          "Бостандыкский",
		Date:              "2026-09-10",
		Time:              "14:00",
		ModelsNeeded:      2,
		ParticipationType: "Бесплатно",
	}
}

func validPostForm() services.PostForm {
	return services.PostForm{
		Date:              "2026-09-11",
		District:          "Медеуский",
		Category:          "Ресницы",
		TimeRange:         "10:00-18:00",
		ParticipationType: "Бесплатно",
	}
}

func TestListing_CreateRequest_RequiresSubscription(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, 300, models.UserRoleCustomer)
	_, err := env.listings.CreateRequest(context.Background(), 300, validRequestForm())
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)
}

func TestListing_CreateRequest_AnnouncesToChannel(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 301, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)

	req, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)
	assert.False(t, req.IsClosed)
	require.NotNil(t, req.MessageID, "ID объявления в канале должен сохраниться")

	require.Len(t, env.messenger.ChannelPosts, 1)
	assert.Contains(t, env.messenger.ChannelPosts[0], "Маникюр")
	assert.Contains(t, env.messenger.ChannelPosts[0], "Нужно моделей: 2")
}

func TestListing_CreateRequest_WrongRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createUser(t, 302, models.UserRoleModel)
	_, err := env.listings.CreateRequest(context.Background(), 302, validRequestForm())
	assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
}

func TestListing_CreateRequest_BlockedUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 303, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)
	require.NoError(t, env.identity.Block(ctx, customer.ID))

	_, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
}

func TestListing_CreatePost_RequiresPrivilegeAndSubscription(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 304, models.UserRoleModel)

	// Без подписки нет и привилегии
	_, err := env.listings.CreatePost(ctx, model.ID, validPostForm())
	assert.ErrorIs(t, err, apperrors.ErrPrivilegeRequired)

	env.subscribe(t, model.ID, models.UserRoleModel)
	post, err := env.listings.CreatePost(ctx, model.ID, validPostForm())
	require.NoError(t, err)
	require.NotNil(t, post.MessageID)
	require.Len(t, env.messenger.ChannelPosts, 1)
}

func TestListing_CreatePost_RateLimited(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	model := env.createUser(t, 305, models.UserRoleModel)
	env.subscribe(t, model.ID, models.UserRoleModel)

	first, err := env.listings.CreatePost(ctx, model.ID, validPostForm())
	require.NoError(t, err)

	// Второй пост внутри интервала запрещен
	_, err = env.listings.CreatePost(ctx, model.ID, validPostForm())
	assert.ErrorIs(t, err, apperrors.ErrPostRateLimited)

	// Закрытие первого поста снимает ограничение
	require.NoError(t, env.listings.ClosePost(ctx, first.ID, model.ID))
	_, err = env.listings.CreatePost(ctx, model.ID, validPostForm())
	assert.NoError(t, err)
}

func TestListing_PatchRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 306, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)
	req, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)

	updated, err := env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestFieldDistrict, "Алмалинский")
	require.NoError(t, err)
	assert.Equal(t, "Алмалинский", updated.District)

	// Объявление в канале переопубликовано
	assert.Len(t, env.messenger.Edits, 1)

	// models_needed парсится и проверяется
	updated, err = env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestFieldModelsNeeded, "5")
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ModelsNeeded)

	_, err = env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestFieldModelsNeeded, "ноль")
	assert.Error(t, err)
}

func TestListing_PatchRequest_ClosedSetOfFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 307, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)
	req, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)

	// Произвольные колонки недоступны
	_, err = env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestField("customer_id"), "1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidListingField)

	_, err = env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestField("is_closed"), "false")
	assert.ErrorIs(t, err, apperrors.ErrInvalidListingField)
}

func TestListing_PatchRequest_OnlyOwner(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 308, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)
	env.createUser(t, 309, models.UserRoleCustomer)

	req, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)

	_, err = env.listings.PatchRequest(ctx, req.ID, 309, models.RequestFieldDistrict, "другой")
	assert.ErrorIs(t, err, apperrors.ErrNotListingOwner)
}

func TestListing_CloseRequest_Idempotency(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 310, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)
	req, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)

	require.NoError(t, env.listings.CloseRequest(ctx, req.ID, customer.ID))

	// Повторное закрытие - ошибка, закрытую заявку не редактировать
	assert.ErrorIs(t, env.listings.CloseRequest(ctx, req.ID, customer.ID), apperrors.ErrListingClosed)
	_, err = env.listings.PatchRequest(ctx, req.ID, customer.ID, models.RequestFieldDistrict, "x")
	assert.ErrorIs(t, err, apperrors.ErrListingClosed)
}

func TestListing_ListOpenRequests_FiltersClosed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 311, models.UserRoleCustomer)
	env.subscribe(t, customer.ID, models.UserRoleCustomer)

	first, err := env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)
	_, err = env.listings.CreateRequest(ctx, customer.ID, validRequestForm())
	require.NoError(t, err)
	require.NoError(t, env.listings.CloseRequest(ctx, first.ID, customer.ID))

	open, err := env.listings.ListOpenRequests(ctx, "")
	require.NoError(t, err)
	assert.Len(t, open, 1)

	// Фильтр по категории
	open, err = env.listings.ListOpenRequests(ctx, "Брови")
	require.NoError(t, err)
	assert.Empty(t, open)
}
