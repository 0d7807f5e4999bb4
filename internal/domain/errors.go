package domain

import "errors"

var (
	// ErrFieldsRequired — не заполнено хотя бы одно персональное поле.
	ErrFieldsRequired = errors.New("personal fields are required")
	// ErrInvalidDocument — CPF не прошёл проверку контрольных цифр.
	ErrInvalidDocument = errors.New("invalid document number")
	// ErrInvalidPhone — телефон не содержит ровно 11 цифр.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrQuantityInvalid — количество товара должно быть положительным.
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// ErrPaymentMethodInvalid — способ оплаты вне закрытого набора.
	ErrPaymentMethodInvalid = errors.New("unknown payment method")
	// ErrCreateOrder — не удалось создать заголовок заказа; позиции не отправлялись.
	ErrCreateOrder = errors.New("order header creation failed")
	// ErrItemsPartial — заголовок создан, но часть позиций не зарегистрирована.
	// Удалённый заказ остаётся с неполным набором позиций, компенсация не выполняется.
	ErrItemsPartial = errors.New("order created but item registration failed")
	// ErrOrdersNotFound — история заказов не найдена (HTTP 404 или иной сбой чтения).
	ErrOrdersNotFound = errors.New("orders not found")
	// ErrItemsNotFound — позиции заказа не найдены.
	ErrItemsNotFound = errors.New("order items not found")
	// ErrUnexpectedStatus — API ответил статусом вне ожидаемого набора.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// IsPartialSubmission проверяет, что оформление завершилось частичным сбоем:
// заголовок есть, позиции — не все.
func IsPartialSubmission(err error) bool {
	return errors.Is(err, ErrItemsPartial)
}
