package models

type UserRole string
type ResponseStatus string
type PaymentStatus string

const (
	UserRoleViewer   UserRole = "viewer"
	UserRoleCustomer UserRole = "customer"
	UserRoleModel    UserRole = "model"

	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusAccepted ResponseStatus = "accepted"
	ResponseStatusRejected ResponseStatus = "rejected"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusCanceled  PaymentStatus = "canceled"
)

// TrialPaymentID - сентинел в поле payment_id подписки.
// Выдается не более одного раза на пару (user, role).
const TrialPaymentID = "trial"

// IsValid проверяет, что роль одна из закрытого набора
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleViewer, UserRoleCustomer, UserRoleModel:
		return true
	}
	return false
}

// IsTerminal - отклик уже решен, статус менять нельзя
func (s ResponseStatus) IsTerminal() bool {
	return s == ResponseStatusAccepted || s == ResponseStatusRejected
}
