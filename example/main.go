package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/application/services/reports"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/services"
)

func main() {
	hours, err := entities.NewBusinessHours("08:00", "22:00")
	if err != nil {
		fmt.Printf("❌ Invalid hours: %v\n", err)
		return
	}

	now := time.Date(2025, 6, 2, 16, 5, 0, 0, time.UTC)
	planner := services.NewPickupSlotPlanner()
	slots := planner.GenerateSlots(hours, now)

	fmt.Println("🕒 Pickup slots for a 4:05 PM checkout:")
	for _, slot := range slots {
		fmt.Printf("  %s  %s\n", slot.Value, slot.Label)
	}
	fmt.Println()

	cart := []entities.CartLine{
		{ProductID: "rye", Name: "Rye Whiskey", UnitPrice: decimal.RequireFromString("24.99"), Quantity: 2},
		{ProductID: "ipa", Name: "IPA Six Pack", UnitPrice: decimal.RequireFromString("11.00"), Quantity: 1},
	}
	taxRate := decimal.RequireFromString("0.08")

	order, err := services.BuildOrder(services.OrderRequest{
		Customer:           entities.Customer{UserID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
		Lines:              cart,
		PickupSlot:         slots[0].Value,
		PickupInstructions: "Side door please",
		ValidSlots:         slots,
		ItemCap:            entities.DefaultItemCap,
		TaxRate:            taxRate,
		Now:                now,
	})
	if err != nil {
		fmt.Printf("❌ Checkout failed: %v\n", err)
		return
	}
	order.ID = "demo-1"

	fmt.Println("🧾 Order placed:")
	fmt.Printf("  Pickup: %s\n", order.PickupTime.Format(entities.ReadableTimeLayout))
	fmt.Printf("  Items: %d\n", order.TotalItems())
	fmt.Printf("  Subtotal: %s\n", reports.FormatCurrency(order.Subtotal))
	fmt.Printf("  Tax: %s\n", reports.FormatCurrency(order.Tax))
	fmt.Printf("  Total: %s\n", reports.FormatCurrency(order.Total))
	fmt.Println()

	// Over the item cap the pricer refuses the order
	tooMany := []entities.CartLine{
		{ProductID: "ipa", Name: "IPA Six Pack", UnitPrice: decimal.RequireFromString("11.00"), Quantity: 8},
	}
	_, err = services.BuildOrder(services.OrderRequest{
		Customer:   entities.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
		Lines:      tooMany,
		PickupSlot: slots[0].Value,
		ValidSlots: slots,
		ItemCap:    entities.DefaultItemCap,
		TaxRate:    taxRate,
		Now:        now,
	})
	fmt.Printf("⚠️  Eight six-packs: %v\n\n", err)

	catalog := []*entities.Product{
		{ID: "rye", Name: "Rye Whiskey", Category: "Whiskey", Price: decimal.RequireFromString("24.99"), Stock: 12},
		{ID: "ipa", Name: "IPA Six Pack", Category: "Beer", Price: decimal.RequireFromString("11.00"), Stock: 40},
	}
	users := []*entities.User{{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"}}

	aggregator := reports.NewAggregator(time.UTC)
	snapshot := reports.Snapshot{Orders: []*entities.Order{order}, Products: catalog, Users: users}
	for _, reportType := range []entities.ReportType{entities.SalesReport, entities.ProductsReport, entities.CustomersReport} {
		record, err := aggregator.Generate(reportType, snapshot, entities.DateRange{})
		if err != nil {
			fmt.Printf("❌ %s report failed: %v\n", reportType, err)
			return
		}

		fmt.Printf("📊 %s report\n", reportType)
		for _, field := range record.Summary {
			fmt.Printf("  %s: %s\n", reports.FormatLabel(field.Key), reports.FormatSummaryValue(field.Key, field.Value))
		}
		for _, row := range record.Rows {
			fmt.Printf("  %v\n", row)
		}
		fmt.Println()
	}
}
