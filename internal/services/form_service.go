package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"beautymatch_backend/internal/forms"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/pkg/apperrors"
)

// Виды анкет
const (
	FormKindRegistration = "registration"
	FormKindRequest      = "request"
	FormKindPost         = "post"
)

// Порядок вопросов. Имена полей совпадают с json-полями форм,
// чтобы шлюз показывал вопросы по одному словарю.
var (
	customerProfileFields = []string{
		"full_name", "city", "district", "phone1", "phone2",
		"activity_type", "address", "gdpr_consent",
	}
	modelProfileFields = []string{
		"full_name", "city", "district", "phone1", "age", "height",
		"skin_type", "contraindications", "available_days", "experience",
		"photo_video_agree", "gdpr_consent",
	}
	requestFormFields = []string{
		"category", "subcategory", "city", "district", "date", "time",
		"duration", "requirements", "models_needed", "participation_type",
		"payment_amount", "comment",
	}
	postFormFields = []string{
		"date", "district", "category", "zones", "time_range",
		"participation_type", "note",
	}
)

// FormState - текущее состояние анкеты: какой вопрос задавать дальше
type FormState struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
	Done  bool   `json:"done"`
}

type FormService interface {
	// StartRegistration открывает анкету профиля. Набор вопросов
	// зависит от роли; у зрителя анкеты нет.
	StartRegistration(ctx context.Context, userID int64) (*FormState, error)
	// StartRequest / StartPost открывают анкету объявления
	StartRequest(ctx context.Context, userID int64) (*FormState, error)
	StartPost(ctx context.Context, userID int64) (*FormState, error)

	Current(ctx context.Context, userID int64) (*FormState, error)
	// Answer записывает ответ на текущий вопрос и двигает анкету дальше
	Answer(ctx context.Context, userID int64, value string) (*FormState, error)
	// Complete собирает ответы и выполняет целевую операцию анкеты:
	// заполнение профиля, публикацию заявки или поста
	Complete(ctx context.Context, userID int64) (interface{}, error)
	Cancel(ctx context.Context, userID int64)
}

type formService struct {
	collector *forms.Collector
	identity  IdentityService
	listings  ListingService
}

func NewFormService(identity IdentityService, listings ListingService) FormService {
	return &formService{
		collector: forms.NewCollector(),
		identity:  identity,
		listings:  listings,
	}
}

func (s *formService) StartRegistration(ctx context.Context, userID int64) (*FormState, error) {
	user, err := s.identity.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var fields []string
	switch user.Role {
	case models.UserRoleCustomer:
		fields = customerProfileFields
	case models.UserRoleModel:
		fields = modelProfileFields
	default:
		return nil, apperrors.ErrRoleMismatch
	}

	session := s.collector.Start(userID, FormKindRegistration, fields)
	logger.CtxInfo(ctx, "form started", "user_id", userID, "kind", FormKindRegistration)
	return stateOf(session), nil
}

func (s *formService) StartRequest(ctx context.Context, userID int64) (*FormState, error) {
	if err := s.requireRole(ctx, userID, models.UserRoleCustomer); err != nil {
		return nil, err
	}
	session := s.collector.Start(userID, FormKindRequest, requestFormFields)
	logger.CtxInfo(ctx, "form started", "user_id", userID, "kind", FormKindRequest)
	return stateOf(session), nil
}

func (s *formService) StartPost(ctx context.Context, userID int64) (*FormState, error) {
	if err := s.requireRole(ctx, userID, models.UserRoleModel); err != nil {
		return nil, err
	}
	session := s.collector.Start(userID, FormKindPost, postFormFields)
	logger.CtxInfo(ctx, "form started", "user_id", userID, "kind", FormKindPost)
	return stateOf(session), nil
}

func (s *formService) Current(ctx context.Context, userID int64) (*FormState, error) {
	session, ok := s.collector.Get(userID)
	if !ok {
		return nil, apperrors.ErrNoFormSession
	}
	return stateOf(session), nil
}

func (s *formService) Answer(ctx context.Context, userID int64, value string) (*FormState, error) {
	session, ok := s.collector.Get(userID)
	if !ok {
		return nil, apperrors.ErrNoFormSession
	}

	next, done, err := s.collector.Set(userID, value)
	if err != nil {
		switch {
		case errors.Is(err, forms.ErrNoSession):
			return nil, apperrors.ErrNoFormSession
		case errors.Is(err, forms.ErrFormComplete):
			return nil, apperrors.NewBadRequestError("form is already complete")
		}
		return nil, err
	}
	return &FormState{Kind: session.Kind, Field: next, Done: done}, nil
}

func (s *formService) Complete(ctx context.Context, userID int64) (interface{}, error) {
	session, ok := s.collector.Get(userID)
	if !ok {
		return nil, apperrors.ErrNoFormSession
	}
	kind := session.Kind

	values, err := s.collector.Complete(userID)
	if err != nil {
		switch {
		case errors.Is(err, forms.ErrNoSession):
			return nil, apperrors.ErrNoFormSession
		case errors.Is(err, forms.ErrFormIncomplete):
			return nil, apperrors.ErrFormIncomplete
		}
		return nil, err
	}

	var result interface{}
	switch kind {
	case FormKindRegistration:
		result, err = s.completeRegistration(ctx, userID, values)
	case FormKindRequest:
		result, err = s.completeRequest(ctx, userID, values)
	case FormKindPost:
		result, err = s.completePost(ctx, userID, values)
	default:
		return nil, apperrors.NewBadRequestError("unknown form kind")
	}
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "form completed", "user_id", userID, "kind", kind)
	return result, nil
}

func (s *formService) Cancel(ctx context.Context, userID int64) {
	s.collector.Cancel(userID)
	logger.CtxInfo(ctx, "form canceled", "user_id", userID)
}

func (s *formService) completeRegistration(ctx context.Context, userID int64, values map[string]string) (interface{}, error) {
	age, err := formInt(values, "age")
	if err != nil {
		return nil, err
	}
	height, err := formInt(values, "height")
	if err != nil {
		return nil, err
	}

	profile := models.ProfileFields{
		FullName:          values["full_name"],
		City:              values["city"],
		District:          values["district"],
		Phone1:            values["phone1"],
		Phone2:            values["phone2"],
		ActivityType:      values["activity_type"],
		Address:           values["address"],
		Age:               age,
		Height:            height,
		SkinType:          values["skin_type"],
		Contraindications: values["contraindications"],
		AvailableDays:     values["available_days"],
		Experience:        values["experience"],
		PhotoVideoAgree:   formBool(values["photo_video_agree"]),
	}
	return s.identity.CompleteRegistration(ctx, userID, profile, formBool(values["gdpr_consent"]))
}

func (s *formService) completeRequest(ctx context.Context, userID int64, values map[string]string) (interface{}, error) {
	needed, err := formInt(values, "models_needed")
	if err != nil {
		return nil, err
	}
	if needed < 1 {
		return nil, apperrors.NewBadRequestError("models_needed must be a positive integer")
	}
	if !models.IsKnownCategory(values["category"]) {
		return nil, apperrors.NewBadRequestError("unknown service category")
	}
	if v := values["subcategory"]; v != "" && !models.IsKnownSubcategory(v) {
		return nil, apperrors.NewBadRequestError("unknown service subcategory")
	}
	if !models.IsKnownParticipationType(values["participation_type"]) {
		return nil, apperrors.NewBadRequestError("unknown participation type")
	}

	form := RequestForm{
		Category:          values["category"],
		Subcategory:       values["subcategory"],
		City:              values["city"],
		District:          values["district"],
		Date:              values["date"],
		Time:              values["time"],
		Duration:          values["duration"],
		Requirements:      values["requirements"],
		ModelsNeeded:      needed,
		ParticipationType: values["participation_type"],
	}
	if v := values["payment_amount"]; v != "" {
		form.PaymentAmount = &v
	}
	if v := values["comment"]; v != "" {
		form.Comment = &v
	}
	return s.listings.CreateRequest(ctx, userID, form)
}

func (s *formService) completePost(ctx context.Context, userID int64, values map[string]string) (interface{}, error) {
	if !models.IsKnownCategory(values["category"]) {
		return nil, apperrors.NewBadRequestError("unknown service category")
	}
	if !models.IsKnownParticipationType(values["participation_type"]) {
		return nil, apperrors.NewBadRequestError("unknown participation type")
	}

	form := PostForm{
		Date:              values["date"],
		District:          values["district"],
		Category:          values["category"],
		Zones:             values["zones"],
		TimeRange:         values["time_range"],
		ParticipationType: values["participation_type"],
	}
	if v := values["note"]; v != "" {
		form.Note = &v
	}
	return s.listings.CreatePost(ctx, userID, form)
}

func (s *formService) requireRole(ctx context.Context, userID int64, role models.UserRole) error {
	user, err := s.identity.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != role {
		return apperrors.ErrRoleMismatch
	}
	return nil
}

func stateOf(session *forms.Session) *FormState {
	field, ok := session.Current()
	return &FormState{Kind: session.Kind, Field: field, Done: !ok}
}

func formInt(values map[string]string, key string) (int, error) {
	raw, ok := values[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a number", key))
	}
	return n, nil
}

// formBool распознает согласие, набранное текстом
func formBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "да", "yes", "true", "1", "+":
		return true
	}
	return false
}
