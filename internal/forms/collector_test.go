package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_FullFlow(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	s := c.Start(1, "request", []string{"category", "city", "date"})
	field, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "category", field)

	next, done, err := c.Set(1, "Маникюр")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "city", next)

	_, done, err = c.Set(1, "Алматы")
	require.NoError(t, err)
	assert.False(t, done)

	_, done, err = c.Set(1, "2026-09-10")
	require.NoError(t, err)
	assert.True(t, done)

	values, err := c.Complete(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"category": "Маникюр",
		"city":     "Алматы",
		"date":     "2026-09-10",
	}, values)

	// Сессия закрыта
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestCollector_CompleteBeforeDone(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	c.Start(2, "post", []string{"date", "district"})
	_, _, err := c.Set(2, "2026-09-11")
	require.NoError(t, err)

	_, err = c.Complete(2)
	assert.Error(t, err, "недозаполненную анкету нельзя завершить")
}

func TestCollector_CancelDiscardsEverything(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	c.Start(3, "registration", []string{"full_name"})
	_, _, err := c.Set(3, "Лена")
	require.NoError(t, err)

	c.Cancel(3)

	// После отмены ввод невозможен, данных не осталось
	_, _, err = c.Set(3, "еще")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = c.Complete(3)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCollector_NewSessionReplacesOld(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	c.Start(4, "request", []string{"category", "city"})
	_, _, err := c.Set(4, "Брови")
	require.NoError(t, err)

	// Новая анкета затирает прежний прогресс
	c.Start(4, "post", []string{"date"})
	s, ok := c.Get(4)
	require.True(t, ok)
	assert.Equal(t, "post", s.Kind)

	field, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "date", field)
}

func TestCollector_SetWithoutSession(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	_, _, err := c.Set(5, "значение")
	assert.ErrorIs(t, err, ErrNoSession)
}
