package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sauceDemo/internal/pages"
)

func TestCompleteShoppingFlow(t *testing.T) {
	ctx := context.Background()
	inventory := loggedIn(t)
	require.True(t, inventory.IsLoaded(ctx))
	assert.True(t, inventory.IsTitleDisplayed(ctx))

	require.NoError(t, inventory.AddBackpack(ctx))
	require.NoError(t, inventory.AddBikeLight(ctx))
	assert.True(t, inventory.IsBackpackInCart(ctx))
	assert.True(t, inventory.IsBikeLightInCart(ctx))
	assert.Equal(t, "2", inventory.CartBadgeCount(ctx))

	cart, err := inventory.OpenCart(ctx)
	require.NoError(t, err)
	require.True(t, cart.IsLoaded(ctx))
	assert.True(t, cart.AreHeadersDisplayed(ctx))
	assert.Equal(t, 2, cart.ItemCount(ctx))
	assert.True(t, cart.ContainsItems(ctx, pages.Backpack, pages.BikeLight))

	stepOne, err := cart.Checkout(ctx)
	require.NoError(t, err)
	require.True(t, stepOne.IsLoaded(ctx))
	require.NoError(t, stepOne.Fill(ctx, pages.CheckoutInfo(data.Checkout())))

	stepTwo, err := stepOne.Continue(ctx)
	require.NoError(t, err)
	require.True(t, stepTwo.IsLoaded(ctx))
	assert.True(t, stepTwo.IsPaymentInfoDisplayed(ctx))
	assert.True(t, stepTwo.IsShippingInfoDisplayed(ctx))
	assert.True(t, stepTwo.IsSauceCard(ctx))

	pricing := data.Pricing()
	assert.True(t, stepTwo.VerifySubtotal(ctx, pricing.Subtotal))
	assert.True(t, stepTwo.VerifyTax(ctx, pricing.Tax))
	assert.True(t, stepTwo.VerifyTotal(ctx, pricing.Total))

	complete, err := stepTwo.Finish(ctx)
	require.NoError(t, err)
	require.True(t, complete.IsLoaded(ctx))
	assert.True(t, complete.AreCompletionElementsDisplayed(ctx))
	assert.True(t, complete.IsCompletionMessageCorrect(ctx))

	home, err := complete.BackHome(ctx)
	require.NoError(t, err)
	assert.True(t, home.IsLoaded(ctx))
}

func TestLoginPageElements(t *testing.T) {
	ctx := context.Background()
	login := openShop(t)

	assert.True(t, login.IsDisplayed(ctx))
	title, err := login.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", title)
}

func TestInventoryPageAfterLogin(t *testing.T) {
	ctx := context.Background()
	inventory := loggedIn(t)

	require.True(t, inventory.IsLoaded(ctx))
	assert.True(t, inventory.AreProductNamesDisplayed(ctx))
	assert.Equal(t, "0", inventory.CartBadgeCount(ctx))

	prices, err := inventory.Prices(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, prices)
}

func TestSmokeFlows(t *testing.T) {
	order := pages.OrderFrom(data)
	for _, flow := range pages.SmokeFlows {
		t.Run(flow.Name, func(t *testing.T) {
			require.NoError(t, flow.Run(context.Background(), newDeps(t), cfg.App.BaseURL, order))
		})
	}
}
