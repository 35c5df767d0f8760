package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
	"github.com/vsinha/liquorstore/pkg/domain/services"
	"github.com/vsinha/liquorstore/pkg/infrastructure/clock"
	"github.com/vsinha/liquorstore/pkg/infrastructure/events"
	testhelpers "github.com/vsinha/liquorstore/pkg/infrastructure/testing"
)

var testNow = time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	data   *testhelpers.StoreData
	events *events.InMemoryEventStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data := testhelpers.BuildStorefrontTestData()
	store := events.NewInMemoryEventStore(nil)

	svc, err := NewService(Dependencies{
		Settings: data.Settings,
		Products: data.Products,
		Orders:   data.Orders,
		Users:    data.Users,
		Clock:    clock.NewFixed(testNow),
		Events:   store,
	})
	require.NoError(t, err)

	return &fixture{svc: svc, data: data, events: store}
}

func validRequest() dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		UserID:             "u3",
		Name:               "  Grace Hopper ",
		Email:              "grace@example.com",
		PickupTime:         "10:15",
		PickupInstructions: " Curbside ",
		Items: []dto.CartItem{
			{ProductID: "rye", Quantity: 2},
			{ProductID: "gin", Quantity: 1},
		},
	}
}

func TestNewService_RequiresRepositories(t *testing.T) {
	_, err := NewService(Dependencies{})
	assert.Error(t, err)
}

func TestService_PickupSlots(t *testing.T) {
	result, err := newFixture(t).svc.PickupSlots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", result.Date)
	assert.Equal(t, "08:00 - 22:00", result.Hours)
	assert.False(t, result.Closed)
	require.NotEmpty(t, result.Slots)
	assert.Equal(t, "10:15", result.Slots[0].Value)
	assert.Equal(t, "10:15 AM", result.Slots[0].Label)
	assert.Equal(t, "21:45", result.Slots[len(result.Slots)-1].Value)
}

func TestService_PickupSlots_Closed(t *testing.T) {
	f := newFixture(t)
	closed := testhelpers.StoreSettings()
	closed.BusinessHours = entities.BusinessHours{}
	require.NoError(t, f.data.Settings.SaveStoreSettings(closed))

	result, err := f.svc.PickupSlots(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Closed)
	assert.Empty(t, result.Slots)
	assert.Equal(t, "closed", result.Hours)
}

func TestService_Quote(t *testing.T) {
	quote, err := newFixture(t).svc.Quote(context.Background(), validRequest().Items)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("69.48").Equal(quote.Totals.Subtotal))
	assert.True(t, decimal.RequireFromString("5.56").Equal(quote.Totals.Tax))
	assert.True(t, decimal.RequireFromString("75.04").Equal(quote.Totals.Total))
	assert.Equal(t, 3, quote.Totals.TotalItems)
	assert.Equal(t, 7, quote.ItemCap)
	assert.False(t, quote.OverCap)
	assert.Empty(t, quote.Adjusted)
}

func TestService_Quote_MergesAndClamps(t *testing.T) {
	items := []dto.CartItem{
		{ProductID: "gin", Quantity: 5},
		{ProductID: "rye", Quantity: 1},
		{ProductID: "gin", Quantity: 15},
	}

	quote, err := newFixture(t).svc.Quote(context.Background(), items)
	require.NoError(t, err)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "gin", quote.Lines[0].ProductID)
	assert.Equal(t, 8, quote.Lines[0].Quantity, "clamped to stock")
	assert.Equal(t, []string{"gin"}, quote.Adjusted)
	assert.True(t, quote.OverCap)
}

func TestService_Quote_BadItems(t *testing.T) {
	svc := newFixture(t).svc

	_, err := svc.Quote(context.Background(), []dto.CartItem{{ProductID: "absinthe", Quantity: 1}})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.Quote(context.Background(), []dto.CartItem{{ProductID: "rye", Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestService_PlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, validRequest())
	require.NoError(t, err)

	_, err = uuid.Parse(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Grace Hopper", order.CustomerName)
	assert.Equal(t, "Curbside", order.PickupInstructions)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC), order.PickupTime)
	assert.Equal(t, testNow, order.CreatedAt)
	assert.Equal(t, entities.Processing, order.Status)
	assert.True(t, decimal.RequireFromString("75.04").Equal(order.Total))

	stored, err := f.data.Orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total.String(), stored.Total.String())

	user, err := f.data.Users.GetUser(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, []string{order.ID}, user.OrderHistory)

	recorded, err := f.events.ReadEvents(events.OrderStreamID(order.ID), 1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.OrderPlacedEvent, recorded[0].Type())
	assert.Equal(t, testNow, recorded[0].Timestamp())
}

func TestService_PlaceOrder_ValidationOrder(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*dto.PlaceOrderRequest)
		expectedErr error
		message     string
	}{
		{
			name: "missing name wins over everything",
			mutate: func(r *dto.PlaceOrderRequest) {
				r.Name = "   "
				r.PickupTime = "03:00"
				r.Items = nil
			},
			expectedErr: services.ErrMissingCustomerInfo,
			message:     "Please fill in all required fields",
		},
		{
			name: "slot before open checks cart",
			mutate: func(r *dto.PlaceOrderRequest) {
				r.PickupTime = "10:00"
				r.Items = nil
			},
			expectedErr: services.ErrInvalidPickupSlot,
			message:     "Invalid pickup time",
		},
		{
			name:        "empty cart",
			mutate:      func(r *dto.PlaceOrderRequest) { r.Items = nil },
			expectedErr: services.ErrEmptyCart,
			message:     "Cart is empty",
		},
		{
			name: "over the item cap",
			mutate: func(r *dto.PlaceOrderRequest) {
				r.Items = []dto.CartItem{{ProductID: "ipa", Quantity: 8}}
			},
			expectedErr: services.ErrItemCapExceeded,
			message:     "Orders over 7 items must be placed in-store",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := f.svc.PlaceOrder(context.Background(), req)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.EqualError(t, err, tt.message)
			assert.True(t, services.IsValidationError(err))

			all, err := f.data.Orders.GetAllOrders(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 3, "rejected checkout must not persist")
		})
	}
}

func TestService_PlaceOrder_UnknownUserStillPlaces(t *testing.T) {
	req := validRequest()
	req.UserID = "ghost"

	order, err := newFixture(t).svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ghost", order.UserID)
}

func TestService_UpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.svc.UpdateOrderStatus(ctx, "o2", entities.Shipped)
	require.NoError(t, err)
	assert.Equal(t, entities.Shipped, updated.Status)

	recorded, err := f.events.ReadEvents(events.OrderStreamID("o2"), 1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	change := recorded[0].Data().(events.OrderStatusChanged)
	assert.Equal(t, entities.Processing, change.From)
	assert.Equal(t, entities.Shipped, change.To)

	_, err = f.svc.UpdateOrderStatus(ctx, "o1", entities.Processing)
	assert.ErrorIs(t, err, entities.ErrInvalidTransition)

	_, err = f.svc.UpdateOrderStatus(ctx, "missing", entities.Shipped)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
