package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/infrastructure/repositories/memory"
)

// StoreData is a populated set of in-memory repositories
type StoreData struct {
	Products *memory.ProductRepository
	Users    *memory.UserRepository
	Orders   *memory.OrderRepository
	Settings *memory.SettingsRepository
}

// StoreSettings returns the settings used by the fixture store: open 08:00-22:00,
// 8% tax, seven item cap.
func StoreSettings() entities.StoreSettings {
	hours, err := entities.NewBusinessHours("08:00", "22:00")
	if err != nil {
		panic(err)
	}
	return entities.StoreSettings{
		StoreName:     "Corner Liquor",
		ContactEmail:  "hello@cornerliquor.test",
		BusinessHours: hours,
		DefaultTax:    decimal.RequireFromString("0.08"),
		ItemCap:       entities.DefaultItemCap,
	}
}

// BuildStorefrontTestData builds a small store with three products, three users
// (one without orders, one without a name) and three historical orders.
func BuildStorefrontTestData() *StoreData {
	products := memory.NewProductRepository(3)
	users := memory.NewUserRepository(3)
	orders := memory.NewOrderRepository()

	catalog := []*entities.Product{
		{ID: "rye", Name: "Rye Whiskey", Category: "Whiskey", Price: decimal.RequireFromString("24.99"), Stock: 12},
		{ID: "gin", Name: "London Dry Gin", Category: "Gin", Price: decimal.RequireFromString("19.50"), Stock: 8},
		{ID: "ipa", Name: "IPA Six Pack", Category: "Beer", Price: decimal.RequireFromString("11.00"), Stock: 40},
	}
	if err := products.LoadProducts(catalog); err != nil {
		panic(err)
	}

	profiles := []*entities.User{
		{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", OrderHistory: []string{"o1", "o3"}},
		{ID: "u2", Name: "", Email: "", OrderHistory: []string{"o2"}},
		{ID: "u3", Name: "Grace Hopper", Email: "grace@example.com"},
	}
	if err := users.LoadUsers(profiles); err != nil {
		panic(err)
	}

	history := []*entities.Order{
		historicalOrder("o1", "u1", "2025-06-01T15:00:00Z", entities.Delivered,
			line("rye", "Rye Whiskey", "24.99", 1), line("gin", "London Dry Gin", "19.50", 1)),
		historicalOrder("o2", "u2", "2025-06-02T10:30:00Z", entities.Processing,
			line("ipa", "IPA Six Pack", "11.00", 2)),
		historicalOrder("o3", "u1", "2025-06-03T18:45:00Z", entities.Cancelled,
			line("gin", "London Dry Gin", "19.50", 2), line("discontinued", "Old Bottle", "5.00", 1)),
	}
	if err := orders.LoadOrders(history); err != nil {
		panic(err)
	}

	return &StoreData{
		Products: products,
		Users:    users,
		Orders:   orders,
		Settings: memory.NewSettingsRepository(StoreSettings()),
	}
}

func line(id, name, price string, qty int) entities.CartLine {
	return entities.CartLine{ProductID: id, Name: name, UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

func historicalOrder(id, userID, createdAt string, status entities.OrderStatus, lines ...entities.CartLine) *entities.Order {
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		panic(err)
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	tax := subtotal.Mul(decimal.RequireFromString("0.08")).Round(2)

	return &entities.Order{
		ID:         id,
		UserID:     userID,
		PickupTime: created.Add(2 * time.Hour),
		Lines:      lines,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
		Status:     status,
		CreatedAt:  created,
	}
}
