package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const EventChargeSuccess = "charge.success"

var (
	koboPerNaira = decimal.NewFromInt(100)
	feeRate      = decimal.RequireFromString("0.015")
	flatFee      = decimal.NewFromInt(100)
	flatFeeFloor = decimal.NewFromInt(2500)
)

type Customer struct {
	Email string `json:"email"`
}

type ChargeData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Status    string          `json:"status"`
	Customer  Customer        `json:"customer"`
	Metadata  json.RawMessage `json:"metadata"`
}

type Event struct {
	Event string     `json:"event"`
	Data  ChargeData `json:"data"`
}

func ParseEvent(body []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("can't decode paystack event: %w", err)
	}
	return &e, nil
}

// IntendedAmount is metadata.amount as sent by the client at checkout. It
// reports false when the field is missing, empty, zero or not a number.
func (d ChargeData) IntendedAmount() (decimal.Decimal, bool) {
	if len(d.Metadata) == 0 || !bytes.HasPrefix(bytes.TrimSpace(d.Metadata), []byte("{")) {
		return decimal.Zero, false
	}
	var meta struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(d.Metadata, &meta); err != nil || len(meta.Amount) == 0 {
		return decimal.Zero, false
	}

	raw := string(meta.Amount)
	var s string
	if err := json.Unmarshal(meta.Amount, &s); err == nil {
		raw = s
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

// EstimateNet subtracts the estimated processor fee from the charged amount:
// 1.5% plus a flat 100 from 2500 upwards. Falls back to the charged amount
// when the estimate leaves nothing.
func EstimateNet(chargedKobo int64) decimal.Decimal {
	charged := decimal.NewFromInt(chargedKobo).Div(koboPerNaira)
	fee := charged.Mul(feeRate)
	if charged.GreaterThanOrEqual(flatFeeFloor) {
		fee = fee.Add(flatFee)
	}
	net := charged.Sub(fee.Round(0))
	if !net.IsPositive() {
		return charged
	}
	return net
}

// CreditAmount is the whole-naira amount to credit for a successful charge.
func (d ChargeData) CreditAmount() int64 {
	amount, ok := d.IntendedAmount()
	if !ok {
		amount = EstimateNet(d.Amount)
	}
	return amount.Round(0).IntPart()
}
