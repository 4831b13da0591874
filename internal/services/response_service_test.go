package services_test

import (
	"context"
	"fmt"
	"testing"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Submit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 400, models.UserRoleCustomer)
	model := env.createUser(t, 401, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	resp, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusPending, resp.Status)

	// Заказчику ушла анкета модели с кнопками принять/отклонить
	msgs := env.messenger.sentTo(customer.ID)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Новый отклик")
	require.Len(t, msgs[0].Buttons, 1)
	assert.Equal(t, fmt.Sprintf("accept_%d", resp.ID), msgs[0].Buttons[0][0].CallbackData)
}

func TestResponse_Submit_Duplicate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 402, models.UserRoleCustomer)
	model := env.createUser(t, 403, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 5)

	_, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	_, err = env.responses.SubmitResponse(ctx, req.ID, model.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResponse)
}

func TestResponse_Submit_QuotaIsDoubleModelsNeeded(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 404, models.UserRoleCustomer)
	req := env.createRequest(t, customer.ID, 1)

	// Квота = нужно моделей * 2
	m1 := env.createUser(t, 405, models.UserRoleModel)
	m2 := env.createUser(t, 406, models.UserRoleModel)
	m3 := env.createUser(t, 407, models.UserRoleModel)

	_, err := env.responses.SubmitResponse(ctx, req.ID, m1.ID)
	require.NoError(t, err)
	_, err = env.responses.SubmitResponse(ctx, req.ID, m2.ID)
	require.NoError(t, err)

	_, err = env.responses.SubmitResponse(ctx, req.ID, m3.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
}

func TestResponse_Submit_RejectedFreesQuota(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 408, models.UserRoleCustomer)
	req := env.createRequest(t, customer.ID, 1)

	m1 := env.createUser(t, 409, models.UserRoleModel)
	m2 := env.createUser(t, 410, models.UserRoleModel)
	m3 := env.createUser(t, 411, models.UserRoleModel)

	first, err := env.responses.SubmitResponse(ctx, req.ID, m1.ID)
	require.NoError(t, err)
	_, err = env.responses.SubmitResponse(ctx, req.ID, m2.ID)
	require.NoError(t, err)

	// Отклоненный отклик освобождает место
	_, err = env.responses.Decide(ctx, first.ID, customer.ID, false)
	require.NoError(t, err)

	_, err = env.responses.SubmitResponse(ctx, req.ID, m3.ID)
	assert.NoError(t, err)
}

func TestResponse_Submit_ClosedRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 412, models.UserRoleCustomer)
	model := env.createUser(t, 413, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)
	require.NoError(t, env.listingRepo.UpdateRequestFields(req.ID, map[string]interface{}{"is_closed": true}))

	_, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingClosed)
}

func TestResponse_Submit_OnlyModels(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 414, models.UserRoleCustomer)
	req := env.createRequest(t, customer.ID, 1)

	_, err := env.responses.SubmitResponse(ctx, req.ID, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
}

func TestResponse_Decide_Accept_SharesContacts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 415, models.UserRoleCustomer)
	model := env.createUser(t, 416, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	resp, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	decided, err := env.responses.Decide(ctx, resp.ID, customer.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusAccepted, decided.Status)

	// Модель получила контакты и приглашение оценить
	msgs := env.messenger.sentTo(model.ID)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Text, "Контакты заказчика")
	assert.Contains(t, msgs[0].Text, customer.Phone1)
	// Клавиатура оценки - два ряда по 5 баллов
	require.Len(t, msgs[1].Buttons, 2)
	assert.Len(t, msgs[1].Buttons[0], 5)
	assert.Len(t, msgs[1].Buttons[1], 5)
}

func TestResponse_Decide_Reject_NoContacts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 417, models.UserRoleCustomer)
	model := env.createUser(t, 418, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	resp, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	decided, err := env.responses.Decide(ctx, resp.ID, customer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusRejected, decided.Status)

	msgs := env.messenger.sentTo(model.ID)
	require.Len(t, msgs, 1)
	assert.NotContains(t, msgs[0].Text, customer.Phone1)
}

func TestResponse_Decide_IsFinal(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 419, models.UserRoleCustomer)
	model := env.createUser(t, 420, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	resp, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	_, err = env.responses.Decide(ctx, resp.ID, customer.ID, false)
	require.NoError(t, err)

	// Решение нельзя пересмотреть
	_, err = env.responses.Decide(ctx, resp.ID, customer.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrResponseDecided)
}

func TestResponse_Decide_OnlyRequestAuthor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 421, models.UserRoleCustomer)
	stranger := env.createUser(t, 422, models.UserRoleCustomer)
	model := env.createUser(t, 423, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	resp, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	_, err = env.responses.Decide(ctx, resp.ID, stranger.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrNotResponseOwner)
}

func TestResponse_SubmitOffer(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 424, models.UserRoleCustomer)
	model := env.createUser(t, 425, models.UserRoleModel)
	post := env.createPost(t, model.ID)

	offer, err := env.responses.SubmitOffer(ctx, post.ID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusPending, offer.Status)

	// Оффер информационный: модель сразу получает контакты, кнопок нет
	msgs := env.messenger.sentTo(model.ID)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, customer.Phone1)
	assert.Empty(t, msgs[0].Buttons)

	_, err = env.responses.SubmitOffer(ctx, post.ID, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResponse)

	// Список офферов виден только автору поста
	offers, err := env.responses.ListOffersByPost(ctx, post.ID, model.ID)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	_, err = env.responses.ListOffersByPost(ctx, post.ID, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotListingOwner)
}

func TestResponse_ListByRequest_OnlyAuthor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, 426, models.UserRoleCustomer)
	stranger := env.createUser(t, 427, models.UserRoleCustomer)
	model := env.createUser(t, 428, models.UserRoleModel)
	req := env.createRequest(t, customer.ID, 1)

	_, err := env.responses.SubmitResponse(ctx, req.ID, model.ID)
	require.NoError(t, err)

	list, err := env.responses.ListByRequest(ctx, req.ID, customer.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.responses.ListByRequest(ctx, req.ID, stranger.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotListingOwner)
}
