package domain

import (
	"strings"
	"time"
)

const NotAssigned = "Not assigned"

type PackType string

const (
	PackSmall PackType = "small"
	PackBig   PackType = "big"
)

func (p PackType) Valid() bool {
	return p == PackSmall || p == PackBig
}

type Item struct {
	ID         int64  `db:"id"`
	PackID     int64  `db:"pack_id"`
	Name       string `db:"name"`
	Price      int64  `db:"price"`
	Quantity   int64  `db:"quantity"`
	Image      string `db:"image"`
	Category   string `db:"category"`
	VendorID   int64  `db:"vendor_id"`
	VendorName string `db:"vendor_name"`
}

// NeedsPackType reports whether the item forces its pack to carry a size.
func (i Item) NeedsPackType() bool {
	switch strings.ToLower(i.Category) {
	case "protein", "carbohydrate":
		return true
	}
	return false
}

type Pack struct {
	ID         int64     `db:"id"`
	OrderID    int64     `db:"order_id"`
	Name       string    `db:"name"`
	VendorID   int64     `db:"vendor_id"`
	VendorName string    `db:"vendor_name"`
	PackType   *PackType `db:"pack_type"`
	Accepted   *bool     `db:"accepted"`
	Items      []Item
}

func (p Pack) LineTotal() int64 {
	var total int64
	for _, it := range p.Items {
		total += it.Price * it.Quantity
	}
	return total
}

type OrderMessage struct {
	ID        int64     `db:"id"`
	OrderID   int64     `db:"order_id"`
	Text      string    `db:"text"`
	FromAdmin bool      `db:"from_admin"`
	CreatedAt time.Time `db:"created_at"`
}

type Order struct {
	ID           int64       `db:"id"`
	UserID       int64       `db:"user_id"`
	Subtotal     int64       `db:"subtotal"`
	ServiceFee   int64       `db:"service_fee"`
	DeliveryFee  int64       `db:"delivery_fee"`
	University   string      `db:"university"`
	Address      string      `db:"address"`
	Phone        string      `db:"phone"`
	DeliveryNote string      `db:"delivery_note"`
	VendorNote   string      `db:"vendor_note"`
	OrderOption  string      `db:"order_option"`
	Status       OrderStatus `db:"status"`
	RiderID      *int64      `db:"rider_id"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	Packs        []Pack
	Messages     []OrderMessage
}

func (o *Order) Total() int64 {
	return o.Subtotal + o.ServiceFee + o.DeliveryFee
}

func (o *Order) RiderAssigned() bool {
	return o.RiderID != nil
}

// VendorPack returns the first pack owned by vendorID.
func (o *Order) VendorPack(vendorID int64) (*Pack, bool) {
	for i := range o.Packs {
		if o.Packs[i].VendorID == vendorID {
			return &o.Packs[i], true
		}
	}
	return nil, false
}

// SetVendorDecision marks every pack of vendorID and returns how many changed.
func (o *Order) SetVendorDecision(vendorID int64, accepted bool) int {
	n := 0
	for i := range o.Packs {
		if o.Packs[i].VendorID == vendorID {
			v := accepted
			o.Packs[i].Accepted = &v
			n++
		}
	}
	return n
}

func (o *Order) VendorLineTotal(vendorID int64) int64 {
	var total int64
	for _, p := range o.Packs {
		if p.VendorID == vendorID {
			total += p.LineTotal()
		}
	}
	return total
}

// AllPacks reports whether every pack carries the given decision.
func (o *Order) AllPacks(accepted bool) bool {
	if len(o.Packs) == 0 {
		return false
	}
	for _, p := range o.Packs {
		if p.Accepted == nil || *p.Accepted != accepted {
			return false
		}
	}
	return true
}

// VendorSummary aggregates the item count and amount of one vendor's packs.
type VendorSummary struct {
	VendorID   int64
	VendorName string
	ItemCount  int
	Amount     int64
}

func (o *Order) VendorSummaries() []VendorSummary {
	idx := make(map[int64]int)
	var out []VendorSummary
	for _, p := range o.Packs {
		i, ok := idx[p.VendorID]
		if !ok {
			idx[p.VendorID] = len(out)
			out = append(out, VendorSummary{VendorID: p.VendorID, VendorName: p.VendorName})
			i = len(out) - 1
		}
		out[i].ItemCount += len(p.Items)
		out[i].Amount += p.LineTotal()
	}
	return out
}
