package domain

// PaymentMethod — способ оплаты из закрытого набора, который принимает API.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Dinheiro"
	PaymentCreditCard PaymentMethod = "Cartão de Crédito"
	PaymentDebitCard  PaymentMethod = "Cartão de Débito"
	PaymentPix        PaymentMethod = "Pix"
)

// PaymentMethods возвращает допустимые способы оплаты в порядке показа.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix}
}

// Valid сообщает, входит ли значение в закрытый набор.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix:
		return true
	}
	return false
}

// Draft — черновик заказа: персональные данные и способ оплаты.
// Document и Phone хранятся в отображаемом виде (с маской); перед отправкой
// в API маска снимается. Черновик живёт до успешного оформления, после чего
// сбрасывается.
type Draft struct {
	CustomerName  string
	Document      string
	Phone         string
	PaymentMethod PaymentMethod
}

// Customer — данные аутентифицированного клиента, которыми преднаполняется
// черновик. Document и Phone — без маски, как они хранятся в учётной записи.
type Customer struct {
	Name     string
	Document string
	Phone    string
}
