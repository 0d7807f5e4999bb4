package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
	"github.com/vladislavdragonenkov/pedidos-client/internal/notify"
	"github.com/vladislavdragonenkov/pedidos-client/internal/service/catalog"
	"github.com/vladislavdragonenkov/pedidos-client/internal/storage/memory"
)

// stubCatalogAPI — заглушка CatalogAPI с фиксированной витриной.
type stubCatalogAPI struct {
	categories []domain.Category
	products   []domain.Product

	categoriesErr error
	productsErr   error
}

func (s *stubCatalogAPI) ListCategories(context.Context) ([]domain.Category, error) {
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}
	return s.categories, nil
}

func (s *stubCatalogAPI) ListProducts(context.Context) ([]domain.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products, nil
}

func (s *stubCatalogAPI) CategoryImageURL(id int64) string {
	return fmt.Sprintf("/categoria/imagem/%d", id)
}

func (s *stubCatalogAPI) ProductImageURL(id int64) string {
	return fmt.Sprintf("/produto/imagem/%d", id)
}

func showcase() *stubCatalogAPI {
	price := decimal.RequireFromString("19.90")
	return &stubCatalogAPI{
		categories: []domain.Category{
			{ID: 1, Description: "Bebidas"},
			{ID: 2, Description: "Lanches"},
		},
		products: []domain.Product{
			{ID: 10, Title: "Açaí 500ml", Description: "com granola", Price: price, CategoryID: 1},
			{ID: 11, Title: "Suco de Laranja", Description: "natural", Price: price, CategoryID: 1},
			{ID: 20, Title: "X-Burguer", Description: "pão com gergelim", Price: price, CategoryID: 2},
		},
	}
}

func newCatalog(api domain.CatalogAPI) (*catalog.Catalog, *memory.CartStore, *notify.Recorder) {
	cart := memory.NewCartStore()
	recorder := notify.NewRecorder()
	return catalog.NewCatalog(api, cart, recorder, nil), cart, recorder
}

func TestRefresh_SelectsFirstCategory(t *testing.T) {
	t.Parallel()

	c, _, _ := newCatalog(showcase())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if c.SelectedCategory() != 1 {
		t.Fatalf("expected first category selected, got %d", c.SelectedCategory())
	}
	visible := c.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 products of category 1, got %d", len(visible))
	}
}

func TestRefresh_KeepsExistingSelection(t *testing.T) {
	t.Parallel()

	c, _, _ := newCatalog(showcase())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	c.SelectCategory(2)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if c.SelectedCategory() != 2 {
		t.Fatalf("refresh must not reset an explicit selection, got %d", c.SelectedCategory())
	}
}

func TestRefresh_PropagatesErrors(t *testing.T) {
	t.Parallel()

	api := showcase()
	api.productsErr = errors.New("boom")
	c, _, _ := newCatalog(api)

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSelectCategory_FiltersFromFullList(t *testing.T) {
	t.Parallel()

	c, _, _ := newCatalog(showcase())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	c.SelectCategory(2)
	visible := c.Visible()
	if len(visible) != 1 || visible[0].ID != 20 {
		t.Fatalf("unexpected selection: %+v", visible)
	}

	// Возврат к первой категории восстанавливает полный показ категории.
	c.SelectCategory(1)
	if got := c.Visible(); len(got) != 2 {
		t.Fatalf("expected 2 products after switching back, got %d", len(got))
	}
}

func TestSearch_IgnoresAccentsAndCase(t *testing.T) {
	t.Parallel()

	c, _, _ := newCatalog(showcase())
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	c.Search("ACAI")
	visible := c.Visible()
	if len(visible) != 1 || visible[0].ID != 10 {
		t.Fatalf("expected accent-insensitive match, got %+v", visible)
	}

	// Поиск работает и по описанию.
	c.Search("granola")
	if got := c.Visible(); len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("expected description match, got %+v", got)
	}

	// Поиск ограничен выбранной категорией.
	c.Search("burguer")
	if got := c.Visible(); len(got) != 0 {
		t.Fatalf("search must not leave the selected category, got %+v", got)
	}

	// Пустой запрос восстанавливает показ категории.
	c.Search("   ")
	if got := c.Visible(); len(got) != 2 {
		t.Fatalf("expected category showcase restored, got %d", len(got))
	}
}

func TestAddToCart(t *testing.T) {
	t.Parallel()

	api := showcase()
	c, cart, recorder := newCatalog(api)

	if err := c.AddToCart(api.products[0], 0); !errors.Is(err, domain.ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}

	if err := c.AddToCart(api.products[0], 2); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	lines := cart.Lines()
	if len(lines) != 1 || lines[0].ProductID != 10 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", lines)
	}
	success := recorder.OfKind(notify.KindSuccess)
	if len(success) != 1 || success[0].Message != "Produto adicionado ao carrinho!" {
		t.Fatalf("unexpected notifications: %+v", recorder.All())
	}
}
