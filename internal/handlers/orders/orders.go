package orders

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/handlers/httpx"
	"github.com/GlebRadaev/mealsection/pkg/auth"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

type Service interface {
	Place(ctx context.Context, customerID int64, order *domain.Order) (*domain.Order, error)
	Order(ctx context.Context, orderID, accountID int64, role domain.Role) (*domain.Order, error)
	UserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context, page, limit int) ([]domain.Order, int64, error)
	DecidePack(ctx context.Context, orderID, vendorID int64, accepted bool) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error)
	AssignRider(ctx context.Context, orderID, riderID int64) (*domain.Order, error)
	AddMessage(ctx context.Context, orderID int64, text string, fromAdmin bool) (*domain.OrderMessage, error)
	Messages(ctx context.Context, orderID, accountID int64, role domain.Role) ([]domain.OrderMessage, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// PlaceOrder godoc
//
//	@Summary		Place an order
//	@Description	Validate the packs, debit the customer's wallet for subtotal, service fee and delivery fee, and store the order as Pending.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PlaceOrderRequestDTO	true	"Order payload"
//	@Success		201		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid order or insufficient balance"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	order, err := h.orderService.Place(r.Context(), auth.AccountID(r.Context()), req.Order())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewOrderResponse(order))
}

// GetOrder godoc
//
//	@Summary	Get an order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	403	{object}	utils.Response	"Order belongs to another account"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx := r.Context()
	order, err := h.orderService.Order(ctx, id, auth.AccountID(ctx), domain.Role(auth.Role(ctx)))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

// GetMyOrders godoc
//
//	@Summary	List the customer's orders
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.OrderResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/orders/mine [get]
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.UserOrders(r.Context(), auth.AccountID(r.Context()))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrdersResponse(orders))
}

// ListOrders godoc
//
//	@Summary	List all orders
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		page	query		int	false	"Page number, starting at 1"
//	@Param		limit	query		int	false	"Page size, at most 100"
//	@Success	200		{object}	dto.OrderListResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid paging parameters"
//	@Failure	403		{object}	utils.Response	"Forbidden"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	orders, total, err := h.orderService.List(r.Context(), page, limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.OrderListResponseDTO{
		Orders: dto.NewOrdersResponse(orders),
		Total:  total,
	})
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// DecidePack godoc
//
//	@Summary		Accept or reject the vendor's packs
//	@Description	Accepting credits the vendor. When every pack of the order is rejected the customer is refunded and the order is cancelled. Repeating the same decision is a no-op.
//	@Tags			Vendor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Order ID"
//	@Param			request	body		dto.PackDecisionRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Order or pack not found"
//	@Failure		409		{object}	utils.Response	"Pack already decided or order closed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/vendor/orders/{id}/decision [patch]
func (h *OrderHandler) DecidePack(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.PackDecisionRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	order, err := h.orderService.DecidePack(r.Context(), id, auth.AccountID(r.Context()), *req.Accepted)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

// UpdateStatus godoc
//
//	@Summary		Move an order to another status
//	@Description	Pending may become Processing or Cancelled, Processing may become Delivered or Cancelled. Delivered pays the assigned rider half of the delivery fee.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Order ID"
//	@Param			request	body		dto.UpdateStatusRequestDTO	true	"New status"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Unknown status"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"Transition not allowed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

// AssignRider godoc
//
//	@Summary	Assign a rider to an order
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Order ID"
//	@Param		request	body		dto.AssignRiderRequestDTO	true	"Rider"
//	@Success	200		{object}	dto.OrderResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	404		{object}	utils.Response	"Order or rider not found"
//	@Failure	409		{object}	utils.Response	"Order closed"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/orders/{id}/rider [patch]
func (h *OrderHandler) AssignRider(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.AssignRiderRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	order, err := h.orderService.AssignRider(r.Context(), id, req.RiderID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

// AddMessage godoc
//
//	@Summary	Post a message on an order
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Order ID"
//	@Param		request	body		dto.MessageRequestDTO	true	"Message"
//	@Success	201		{object}	dto.MessageDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	404		{object}	utils.Response	"Order not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/orders/{id}/messages [post]
func (h *OrderHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.MessageRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	msg, err := h.orderService.AddMessage(r.Context(), id, req.Text, true)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewMessageResponse(msg))
}

// GetMessages godoc
//
//	@Summary	List the messages of an order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{array}		dto.MessageDTO
//	@Failure	403	{object}	utils.Response	"Order belongs to another account"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/orders/{id}/messages [get]
func (h *OrderHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx := r.Context()
	msgs, err := h.orderService.Messages(ctx, id, auth.AccountID(ctx), domain.Role(auth.Role(ctx)))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewMessagesResponse(msgs))
}
