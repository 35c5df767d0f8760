package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

type checkoutTestContext struct {
	planner *PickupSlotPlanner
	hours   entities.BusinessHours
	taxRate decimal.Decimal
	itemCap int
	now     time.Time
	lines   []entities.CartLine
	order   *entities.Order
	err     error
}

func (c *checkoutTestContext) reset() {
	c.planner = NewPickupSlotPlanner()
	c.hours = entities.BusinessHours{}
	c.taxRate = decimal.Zero
	c.itemCap = entities.DefaultItemCap
	c.now = time.Time{}
	c.lines = nil
	c.order = nil
	c.err = nil
}

func (c *checkoutTestContext) theStoreIsOpenFromTo(open, close string) error {
	hours, err := entities.NewBusinessHours(open, close)
	if err != nil {
		return err
	}
	c.hours = hours
	return nil
}

func (c *checkoutTestContext) theTaxRateIs(rate string) error {
	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}
	c.taxRate = parsed
	return nil
}

func (c *checkoutTestContext) theItemCapIs(limit int) error {
	c.itemCap = limit
	return nil
}

func (c *checkoutTestContext) itIs(clock string) error {
	tod, err := entities.ParseTimeOfDay(clock)
	if err != nil {
		return err
	}
	c.now = tod.On(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	return nil
}

func (c *checkoutTestContext) theCartContains(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // skip header
		}
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return err
		}
		c.lines = append(c.lines, entities.CartLine{
			ProductID: row.Cells[0].Value,
			Name:      row.Cells[1].Value,
			UnitPrice: price,
			Quantity:  quantity,
		})
	}
	return nil
}

func (c *checkoutTestContext) placesAnOrderFor(name, email, slot string) error {
	c.order, c.err = BuildOrder(OrderRequest{
		Customer:   entities.Customer{UserID: "u1", Name: name, Email: email},
		Lines:      c.lines,
		PickupSlot: slot,
		ValidSlots: c.planner.GenerateSlots(c.hours, c.now),
		ItemCap:    c.itemCap,
		TaxRate:    c.taxRate,
		Now:        c.now,
	})
	return nil
}

func (c *checkoutTestContext) theOfferedSlotsAre(expected string) error {
	got := slotValues(c.planner.GenerateSlots(c.hours, c.now))
	if strings.Join(got, ", ") != expected {
		return fmt.Errorf("expected slots %q, got %q", expected, strings.Join(got, ", "))
	}
	return nil
}

func (c *checkoutTestContext) noSlotsAreOffered() error {
	if slots := c.planner.GenerateSlots(c.hours, c.now); len(slots) != 0 {
		return fmt.Errorf("expected no slots, got %v", slotValues(slots))
	}
	return nil
}

func (c *checkoutTestContext) theOrderIsAccepted() error {
	if c.err != nil {
		return fmt.Errorf("expected order to be accepted, got %v", c.err)
	}
	if c.order == nil || c.order.Status != entities.Processing {
		return fmt.Errorf("expected a processing order, got %+v", c.order)
	}
	return nil
}

func (c *checkoutTestContext) theOrderIsRejectedWith(message string) error {
	if c.err == nil {
		return fmt.Errorf("expected order to be rejected with %q", message)
	}
	if c.err.Error() != message {
		return fmt.Errorf("expected rejection %q, got %q", message, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) theOrderTotalIs(amount string) error {
	return c.expectAmount("total", c.order.Total, amount)
}

func (c *checkoutTestContext) theOrderTaxIs(amount string) error {
	return c.expectAmount("tax", c.order.Tax, amount)
}

func (c *checkoutTestContext) expectAmount(field string, got decimal.Decimal, want string) error {
	if c.order == nil {
		return fmt.Errorf("no order was built: %v", c.err)
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("expected %s %s, got %s", field, want, got)
	}
	return nil
}

func InitializeCheckoutScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the store is open from "([^"]*)" to "([^"]*)"$`, tc.theStoreIsOpenFromTo)
	ctx.Step(`^the tax rate is "([^"]*)"$`, tc.theTaxRateIs)
	ctx.Step(`^the item cap is (\d+)$`, tc.theItemCapIs)
	ctx.Step(`^it is "([^"]*)"$`, tc.itIs)
	ctx.Step(`^the cart contains:$`, tc.theCartContains)
	ctx.Step(`^"([^"]*)" with email "([^"]*)" places an order for "([^"]*)"$`, tc.placesAnOrderFor)
	ctx.Step(`^the offered slots are "([^"]*)"$`, tc.theOfferedSlotsAre)
	ctx.Step(`^no slots are offered$`, tc.noSlotsAreOffered)
	ctx.Step(`^the order is accepted$`, tc.theOrderIsAccepted)
	ctx.Step(`^the order is rejected with "([^"]*)"$`, tc.theOrderIsRejectedWith)
	ctx.Step(`^the order total is "([^"]*)"$`, tc.theOrderTotalIs)
	ctx.Step(`^the order tax is "([^"]*)"$`, tc.theOrderTaxIs)
}

func TestCheckoutFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCheckoutScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
