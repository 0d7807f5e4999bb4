package domain

import "github.com/shopspring/decimal"

// Category — категория каталога.
type Category struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao"`
}

// Product — товар каталога.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"titulo"`
	Price       decimal.Decimal `json:"preco"`
	Description string          `json:"descricao"`
	CategoryID  int64           `json:"categoriaId"`
	ImageRef    string          `json:"url"`
}

// CartLine — одна строка корзины: снимок товара на момент добавления плюс
// выбранное количество. Снимок при оформлении не перечитывается из каталога.
type CartLine struct {
	ProductID   int64
	Title       string
	UnitPrice   decimal.Decimal
	Description string
	ImageRef    string
	Quantity    int32
}

// Total возвращает стоимость строки: количество × цена за единицу.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// LineFromProduct собирает строку корзины из товара и количества.
func LineFromProduct(p Product, quantity int32) CartLine {
	return CartLine{
		ProductID:   p.ID,
		Title:       p.Title,
		UnitPrice:   p.Price,
		Description: p.Description,
		ImageRef:    p.ImageRef,
		Quantity:    quantity,
	}
}
