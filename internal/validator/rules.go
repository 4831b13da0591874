package validator

import (
	"log"

	"beautymatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без этих правил валидация форм бессмысленна,
			// приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': роль пользователя из закрытого списка
	mustRegister("is-user-role", validateUserRole)

	// 'is-service-category': категория услуги из справочника
	mustRegister("is-service-category", validateServiceCategory)

	// 'is-service-subcategory': формат заявки из справочника
	mustRegister("is-service-subcategory", validateServiceSubcategory)

	// 'is-participation-type': условия участия из справочника
	mustRegister("is-participation-type", validateParticipationType)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения ловит 'required'
	}
	return models.UserRole(value).IsValid()
}

func validateServiceCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsKnownCategory(value)
}

func validateServiceSubcategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsKnownSubcategory(value)
}

func validateParticipationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsKnownParticipationType(value)
}
