package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusDelivered, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("Processing")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, st)

	_, err = ParseOrderStatus("processing")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccount_CanAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    bool
	}{
		{name: "Customer", account: Account{Role: RoleCustomer}, want: true},
		{name: "Manager", account: Account{Role: RoleManager}, want: true},
		{name: "Vendor awaiting approval", account: Account{Role: RoleVendor}},
		{name: "Vendor rejected", account: Account{Role: RoleVendor, Valid: boolPtr(false)}},
		{name: "Rider approved", account: Account{Role: RoleRider, Valid: boolPtr(true)}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.CanAuthenticate())
		})
	}
}

func TestItem_NeedsPackType(t *testing.T) {
	assert.True(t, Item{Category: "Protein"}.NeedsPackType())
	assert.True(t, Item{Category: "carbohydrate"}.NeedsPackType())
	assert.False(t, Item{Category: "drinks"}.NeedsPackType())
}

func TestLedgerDelta_EntryType(t *testing.T) {
	assert.Equal(t, EntryIn, LedgerDelta{Amount: 100}.EntryType())
	assert.Equal(t, EntryOut, LedgerDelta{Amount: -100}.EntryType())
}

func testOrder() *Order {
	return &Order{
		Subtotal:    2500,
		ServiceFee:  200,
		DeliveryFee: 300,
		Packs: []Pack{
			{VendorID: 1, VendorName: "Mama Put", Items: []Item{{Price: 1000, Quantity: 1}, {Price: 250, Quantity: 2}}},
			{VendorID: 2, VendorName: "Suya Spot", Items: []Item{{Price: 500, Quantity: 1}}},
			{VendorID: 1, VendorName: "Mama Put", Items: []Item{{Price: 500, Quantity: 1}}},
		},
	}
}

func TestOrder_Totals(t *testing.T) {
	o := testOrder()
	assert.Equal(t, int64(3000), o.Total())
	assert.Equal(t, int64(2000), o.VendorLineTotal(1))
	assert.Equal(t, int64(500), o.VendorLineTotal(2))
	assert.Equal(t, int64(0), o.VendorLineTotal(3))
}

func TestOrder_VendorSummaries(t *testing.T) {
	assert.Equal(t, []VendorSummary{
		{VendorID: 1, VendorName: "Mama Put", ItemCount: 3, Amount: 2000},
		{VendorID: 2, VendorName: "Suya Spot", ItemCount: 1, Amount: 500},
	}, testOrder().VendorSummaries())
}

func TestOrder_VendorDecisions(t *testing.T) {
	o := testOrder()
	assert.False(t, o.AllPacks(true))

	_, ok := o.VendorPack(3)
	assert.False(t, ok)

	assert.Equal(t, 2, o.SetVendorDecision(1, true))
	assert.False(t, o.AllPacks(true))

	p, ok := o.VendorPack(1)
	require.True(t, ok)
	require.NotNil(t, p.Accepted)
	assert.True(t, *p.Accepted)

	assert.Equal(t, 1, o.SetVendorDecision(2, true))
	assert.True(t, o.AllPacks(true))
	assert.False(t, o.AllPacks(false))

	o.SetVendorDecision(2, false)
	assert.False(t, o.AllPacks(true))
	assert.False(t, o.AllPacks(false))

	assert.False(t, (&Order{}).AllPacks(true))
}

func TestWithdrawal_Pending(t *testing.T) {
	assert.True(t, (&Withdrawal{}).Pending())
	assert.False(t, (&Withdrawal{Status: boolPtr(false)}).Pending())
}
