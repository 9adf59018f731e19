package dto

import (
	"time"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

const riderAssigned = "Assigned"

type ItemDTO struct {
	Name       string `json:"name" validate:"required" example:"Jollof rice"`
	Price      int64  `json:"price" example:"800"`
	Quantity   int64  `json:"quantity" example:"2"`
	Image      string `json:"image,omitempty" example:"https://cdn.mealsection.com/jollof.png"`
	Category   string `json:"category" example:"carbohydrate"`
	VendorName string `json:"vendorName,omitempty" example:"Mama Put"`
}

type PackDTO struct {
	ID         int64     `json:"id,omitempty" example:"9"`
	Name       string    `json:"name" example:"Pack 1"`
	VendorID   int64     `json:"vendorId,omitempty" example:"7"`
	VendorName string    `json:"vendorName" example:"Mama Put"`
	PackType   string    `json:"packType,omitempty" example:"big"`
	Accepted   *bool     `json:"accepted" example:"true"`
	Items      []ItemDTO `json:"items"`
}

type PlaceOrderRequestDTO struct {
	Packs        []PackDTO `json:"packs"`
	Subtotal     int64     `json:"subtotal" example:"2000"`
	ServiceFee   int64     `json:"serviceFee" example:"100"`
	DeliveryFee  int64     `json:"deliveryFee" example:"400"`
	University   string    `json:"university" example:"UNILAG"`
	Address      string    `json:"address" validate:"required" example:"Moremi Hall, Room 12"`
	Phone        string    `json:"phone" validate:"required" example:"08030000000"`
	DeliveryNote string    `json:"deliveryNote" example:"Call on arrival"`
	VendorNote   string    `json:"vendorNote" example:"No pepper"`
	OrderOption  string    `json:"orderOption" example:"delivery"`
}

// Order converts the request into a domain order. Pack types other than small
// and big are kept so the order service can reject them with context.
func (r PlaceOrderRequestDTO) Order() *domain.Order {
	order := &domain.Order{
		Subtotal:     r.Subtotal,
		ServiceFee:   r.ServiceFee,
		DeliveryFee:  r.DeliveryFee,
		University:   r.University,
		Address:      r.Address,
		Phone:        r.Phone,
		DeliveryNote: r.DeliveryNote,
		VendorNote:   r.VendorNote,
		OrderOption:  r.OrderOption,
		Packs:        make([]domain.Pack, 0, len(r.Packs)),
	}
	for _, p := range r.Packs {
		pack := domain.Pack{
			Name:       p.Name,
			VendorID:   p.VendorID,
			VendorName: p.VendorName,
			Items:      make([]domain.Item, 0, len(p.Items)),
		}
		if p.PackType != "" {
			pt := domain.PackType(p.PackType)
			pack.PackType = &pt
		}
		for _, it := range p.Items {
			pack.Items = append(pack.Items, domain.Item{
				Name:       it.Name,
				Price:      it.Price,
				Quantity:   it.Quantity,
				Image:      it.Image,
				Category:   it.Category,
				VendorName: it.VendorName,
			})
		}
		order.Packs = append(order.Packs, pack)
	}
	return order
}

type MessageDTO struct {
	ID        int64     `json:"id" example:"1"`
	Text      string    `json:"text" example:"Your rider is on the way"`
	FromAdmin bool      `json:"fromAdmin" example:"true"`
	CreatedAt time.Time `json:"createdAt" example:"2024-03-01T10:00:00Z"`
}

func NewMessageResponse(m *domain.OrderMessage) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Text:      m.Text,
		FromAdmin: m.FromAdmin,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessagesResponse(msgs []domain.OrderMessage) []MessageDTO {
	resp := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, NewMessageResponse(&msgs[i]))
	}
	return resp
}

type OrderResponseDTO struct {
	ID           int64        `json:"id" example:"41"`
	UserID       int64        `json:"userId" example:"3"`
	Packs        []PackDTO    `json:"packs"`
	Subtotal     int64        `json:"subtotal" example:"2000"`
	ServiceFee   int64        `json:"serviceFee" example:"100"`
	DeliveryFee  int64        `json:"deliveryFee" example:"400"`
	Total        int64        `json:"total" example:"2500"`
	University   string       `json:"university" example:"UNILAG"`
	Address      string       `json:"address" example:"Moremi Hall, Room 12"`
	Phone        string       `json:"phone" example:"08030000000"`
	DeliveryNote string       `json:"deliveryNote,omitempty" example:"Call on arrival"`
	VendorNote   string       `json:"vendorNote,omitempty" example:"No pepper"`
	OrderOption  string       `json:"orderOption,omitempty" example:"delivery"`
	Status       string       `json:"status" example:"Pending"`
	Rider        string       `json:"rider" example:"Not assigned"`
	RiderID      *int64       `json:"riderId,omitempty" example:"11"`
	Messages     []MessageDTO `json:"messages,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" example:"2024-03-01T10:00:00Z"`
	UpdatedAt    time.Time    `json:"updatedAt" example:"2024-03-01T10:00:00Z"`
}

func NewOrderResponse(o *domain.Order) OrderResponseDTO {
	resp := OrderResponseDTO{
		ID:           o.ID,
		UserID:       o.UserID,
		Packs:        make([]PackDTO, 0, len(o.Packs)),
		Subtotal:     o.Subtotal,
		ServiceFee:   o.ServiceFee,
		DeliveryFee:  o.DeliveryFee,
		Total:        o.Total(),
		University:   o.University,
		Address:      o.Address,
		Phone:        o.Phone,
		DeliveryNote: o.DeliveryNote,
		VendorNote:   o.VendorNote,
		OrderOption:  o.OrderOption,
		Status:       string(o.Status),
		Rider:        domain.NotAssigned,
		RiderID:      o.RiderID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.RiderAssigned() {
		resp.Rider = riderAssigned
	}
	if len(o.Messages) > 0 {
		resp.Messages = NewMessagesResponse(o.Messages)
	}
	for _, p := range o.Packs {
		pack := PackDTO{
			ID:         p.ID,
			Name:       p.Name,
			VendorID:   p.VendorID,
			VendorName: p.VendorName,
			Accepted:   p.Accepted,
			Items:      make([]ItemDTO, 0, len(p.Items)),
		}
		if p.PackType != nil {
			pack.PackType = string(*p.PackType)
		}
		for _, it := range p.Items {
			pack.Items = append(pack.Items, ItemDTO{
				Name:       it.Name,
				Price:      it.Price,
				Quantity:   it.Quantity,
				Image:      it.Image,
				Category:   it.Category,
				VendorName: it.VendorName,
			})
		}
		resp.Packs = append(resp.Packs, pack)
	}
	return resp
}

func NewOrdersResponse(orders []domain.Order) []OrderResponseDTO {
	resp := make([]OrderResponseDTO, 0, len(orders))
	for i := range orders {
		resp = append(resp, NewOrderResponse(&orders[i]))
	}
	return resp
}

type OrderListResponseDTO struct {
	Orders []OrderResponseDTO `json:"orders"`
	Total  int64              `json:"total" example:"120"`
}

type PackDecisionRequestDTO struct {
	Accepted *bool `json:"accepted" validate:"required" example:"true"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status" validate:"required" example:"Processing"`
}

type AssignRiderRequestDTO struct {
	RiderID int64 `json:"riderId" validate:"required,gt=0" example:"11"`
}

type MessageRequestDTO struct {
	Text string `json:"text" validate:"required" example:"Your rider is on the way"`
}
