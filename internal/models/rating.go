package models

// Rating - взаимная оценка после принятого отклика. Восемь бинарных
// критериев; итоговый балл = доля положительных * 10.
// Уникальный индекс (response_id, rater_id): одна оценка на сторону.
type Rating struct {
	BaseModel
	ResponseID int64 `gorm:"not null;uniqueIndex:idx_rating_response_rater" json:"response_id"`
	RaterID    int64 `gorm:"not null;uniqueIndex:idx_rating_response_rater" json:"rater_id"`
	RatedID    int64 `gorm:"not null;index" json:"rated_id"`

	Came               bool `json:"came"`
	Prepared           bool `json:"prepared"`
	RequirementsMet    bool `json:"requirements_met"`
	WorkAgain          bool `json:"work_again"`
	LocationConvenient bool `json:"location_convenient"`
	ConditionsMet      bool `json:"conditions_met"`
	AttitudeCorrect    bool `json:"attitude_correct"`
	CooperateAgain     bool `json:"cooperate_again"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Score - вклад одной оценки в средний рейтинг, 0.0-10.0
func (r *Rating) Score() float64 {
	sum := 0
	for _, v := range []bool{
		r.Came, r.Prepared, r.RequirementsMet, r.WorkAgain,
		r.LocationConvenient, r.ConditionsMet, r.AttitudeCorrect, r.CooperateAgain,
	} {
		if v {
			sum++
		}
	}
	return float64(sum) / 8.0 * 10.0
}

// ExpandScore раскладывает балл 1-10 по восьми критериям.
// Порог положительного ответа - 8 и выше.
func ExpandScore(score int) (positive bool) {
	return score >= 8
}
