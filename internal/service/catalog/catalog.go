// Package catalog обслуживает витрину: категории, товары, поиск и добавление
// в корзину.
package catalog

import (
	"context"
	"strings"
	"sync"
	"unicode"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

const msgProductAdded = "Produto adicionado ao carrinho!"

// CartWriter — способность класть строки в корзину; большего витрине не нужно.
type CartWriter interface {
	Add(line domain.CartLine)
}

// Catalog держит загруженную витрину и текущую выборку товаров.
type Catalog struct {
	api      domain.CatalogAPI
	cart     CartWriter
	notifier domain.Notifier
	logger   *log.Entry

	mu         sync.RWMutex
	categories []domain.Category
	products   []domain.Product
	selected   int64 // 0 — категория не выбрана
	visible    []domain.Product
}

// NewCatalog создаёт сервис витрины.
func NewCatalog(api domain.CatalogAPI, cart CartWriter, notifier domain.Notifier, logger *log.Entry) *Catalog {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Catalog{
		api:      api,
		cart:     cart,
		notifier: notifier,
		logger:   logger,
	}
}

// Refresh перечитывает категории и товары. Если категория ещё не выбрана,
// выбирается первая — с неё начинается показ.
func (c *Catalog) Refresh(ctx context.Context) error {
	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
	c.products = products
	if c.selected == 0 && len(categories) > 0 {
		c.selected = categories[0].ID
	}
	c.visible = filterByCategory(products, c.selected)
	c.logger.WithFields(log.Fields{
		"categories": len(categories),
		"products":   len(products),
	}).Debug("catalog refreshed")
	return nil
}

// Categories возвращает копию списка категорий.
func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// SelectedCategory возвращает идентификатор выбранной категории (0 — нет).
func (c *Catalog) SelectedCategory() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// SelectCategory переключает витрину на категорию; выборка товаров всегда
// строится от полного списка.
func (c *Catalog) SelectCategory(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
	c.visible = filterByCategory(c.products, id)
}

// Visible возвращает копию текущей выборки товаров.
func (c *Catalog) Visible() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.visible))
	copy(out, c.visible)
	return out
}

// Search ищет товары выбранной категории по подстроке, игнорируя регистр и
// диакритику. Пустой запрос возвращает показ категории.
func (c *Catalog) Search(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	folded := fold(strings.TrimSpace(term))
	if folded == "" {
		c.visible = filterByCategory(c.products, c.selected)
		return
	}
	if c.selected == 0 {
		c.visible = nil
		return
	}

	var out []domain.Product
	for _, p := range c.products {
		if p.CategoryID != c.selected {
			continue
		}
		if strings.Contains(fold(p.Title), folded) || strings.Contains(fold(p.Description), folded) {
			out = append(out, p)
		}
	}
	c.visible = out
}

// AddToCart кладёт товар с выбранным количеством в корзину.
func (c *Catalog) AddToCart(p domain.Product, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrQuantityInvalid
	}
	c.cart.Add(domain.LineFromProduct(p, quantity))
	c.notifier.Success(msgProductAdded)
	return nil
}

// CategoryImageURL возвращает адрес картинки категории.
func (c *Catalog) CategoryImageURL(id int64) string {
	return c.api.CategoryImageURL(id)
}

// ProductImageURL возвращает адрес картинки товара.
func (c *Catalog) ProductImageURL(id int64) string {
	return c.api.ProductImageURL(id)
}

func filterByCategory(products []domain.Product, categoryID int64) []domain.Product {
	if categoryID == 0 {
		return nil
	}
	var out []domain.Product
	for _, p := range products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// fold снимает диакритику (NFD + удаление комбинируемых знаков) и приводит
// строку к нижнему регистру.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
