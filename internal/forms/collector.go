// Package forms хранит незавершенные пошаговые анкеты пользователей.
// Состояние живет только в памяти: до подтверждения ничего не пишется
// в хранилище, отмена стирает все собранное.
package forms

import (
	"errors"
	"sync"
)

var (
	ErrNoSession      = errors.New("no active form session")
	ErrFormComplete   = errors.New("form is already complete")
	ErrFormIncomplete = errors.New("form has unanswered fields")
)

// Session - одна незавершенная анкета
type Session struct {
	Kind   string            // registration, request, post и т.п.
	Fields []string          // порядок вопросов
	step   int
	values map[string]string
}

// Current возвращает имя поля, которое заполняется сейчас
func (s *Session) Current() (string, bool) {
	if s.step >= len(s.Fields) {
		return "", false
	}
	return s.Fields[s.step], true
}

// Done - все поля собраны
func (s *Session) Done() bool {
	return s.step >= len(s.Fields)
}

// Collector - реестр сессий по пользователям. Одна активная анкета
// на пользователя: новая заменяет старую.
type Collector struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewCollector() *Collector {
	return &Collector{sessions: make(map[int64]*Session)}
}

// Start открывает новую анкету, затирая прежнюю незавершенную
func (c *Collector) Start(userID int64, kind string, fields []string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &Session{
		Kind:   kind,
		Fields: fields,
		values: make(map[string]string, len(fields)),
	}
	c.sessions[userID] = s
	return s
}

// Get возвращает активную сессию пользователя
func (c *Collector) Get(userID int64) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[userID]
	return s, ok
}

// Set записывает ответ на текущий вопрос и двигает шаг
func (c *Collector) Set(userID int64, value string) (next string, done bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[userID]
	if !ok {
		return "", false, ErrNoSession
	}
	if s.Done() {
		return "", true, ErrFormComplete
	}

	s.values[s.Fields[s.step]] = value
	s.step++

	if s.Done() {
		return "", true, nil
	}
	return s.Fields[s.step], false, nil
}

// Cancel стирает сессию целиком. Частично собранные данные не
// переживают отмену.
func (c *Collector) Cancel(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
}

// Complete возвращает собранные значения и закрывает сессию.
// Ошибка, если анкета не дозаполнена.
func (c *Collector) Complete(userID int64) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	if !s.Done() {
		return nil, ErrFormIncomplete
	}

	delete(c.sessions, userID)
	return s.values, nil
}
