package models

// Справочники площадки. Закрытые списки, используются при валидации форм.

var ServiceCategories = []string{
	"Брови",
	"Ресницы",
	"Депиляция",
	"Шугаринг",
	"Макияж",
	"Маникюр",
	"Педикюр",
	"Косметология",
	"Массаж",
	"Другое",
}

var ServiceSubcategories = []string{
	"Практика",
	"Обучение",
	"Контент-съёмка",
	"Коммерческая работа",
}

var ParticipationTypes = []string{
	"Бесплатно",
	"Оплачиваемо",
	"Бартер",
	"Обучение",
}

func IsKnownCategory(c string) bool {
	return contains(ServiceCategories, c)
}

func IsKnownSubcategory(c string) bool {
	return contains(ServiceSubcategories, c)
}

func IsKnownParticipationType(c string) bool {
	return contains(ParticipationTypes, c)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
