// Package http exposes the delivery service over a JSON HTTP API.
package http

import (
	"errors"
	"net/http"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	claimOrderHandler   commands.ClaimOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	calculateQuoteHandler     queries.CalculateQuoteQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getOrderHandler           queries.GetOrderQueryHandler

	distanceProvider ports.DistanceProvider
}

// NewServer creates an HTTP server with the required command and query handlers.
// The distance provider resolves addresses to a driving distance when the
// request does not carry one already.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	calculateQuoteHandler queries.CalculateQuoteQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	distanceProvider ports.DistanceProvider,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		claimOrderHandler:         claimOrderHandler,
		advanceOrderHandler:       advanceOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		calculateQuoteHandler:     calculateQuoteHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getOrderHandler:           getOrderHandler,
		distanceProvider:          distanceProvider,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/quotes", s.CalculateQuote)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/tracking/:number", s.TrackOrder)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// QuoteRequest is the payload for quote and order-creation endpoints.
// Either distance_km or both addresses must be provided; when both are present
// the supplied distance wins and no lookup is performed.
type QuoteRequest struct {
	PickupAddress  string              `json:"pickup_address"`
	DropoffAddress string              `json:"dropoff_address"`
	DistanceKm     *float64            `json:"distance_km,omitempty"`
	Manifest       []order.PackageItem `json:"manifest"`
	Window         string              `json:"window"`
	LoyaltyTier    string              `json:"loyalty_tier"`
}

// CalculateQuote handles POST /api/v1/quotes. Prices a prospective order
// without persisting anything.
func (s *Server) CalculateQuote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	window, err := order.DeliveryWindowFromString(req.Window)
	if err != nil {
		return writeError(ctx, err)
	}

	loyalty, err := order.LoyaltyTierFromString(req.LoyaltyTier)
	if err != nil {
		return writeError(ctx, err)
	}

	distanceKm, err := s.resolveDistance(ctx, req)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewCalculateQuoteQuery(distanceKm, req.Manifest, window, loyalty)
	if err != nil {
		return writeError(ctx, err)
	}

	breakdown, err := s.calculateQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, breakdown)
}

// CreateOrderRequest is the payload for POST /api/v1/orders.
type CreateOrderRequest struct {
	QuoteRequest
	CustomerID string `json:"customer_id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	window, err := order.DeliveryWindowFromString(req.Window)
	if err != nil {
		return writeError(ctx, err)
	}

	loyalty, err := order.LoyaltyTierFromString(req.LoyaltyTier)
	if err != nil {
		return writeError(ctx, err)
	}

	distanceKm, err := s.resolveDistance(ctx, req.QuoteRequest)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, req.PickupAddress, req.DropoffAddress,
		distanceKm, req.Manifest, window, loyalty,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.fetchOrderView(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderView(view))
}

// AvailableOrder is the driver-facing summary of a claimable order.
type AvailableOrder struct {
	ID             string  `json:"id"`
	TrackingNumber string  `json:"tracking_number"`
	PickupAddress  string  `json:"pickup_address"`
	DropoffAddress string  `json:"dropoff_address"`
	DistanceKm     float64 `json:"distance_km"`
	Window         string  `json:"window"`
	PriceTotal     float64 `json:"price_total"`
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	available, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AvailableOrder, len(available))
	for i, o := range available {
		response[i] = AvailableOrder{
			ID:             o.ID.String(),
			TrackingNumber: o.TrackingNumber,
			PickupAddress:  o.PickupAddress,
			DropoffAddress: o.DropoffAddress,
			DistanceKm:     o.DistanceKm,
			Window:         o.Window,
			PriceTotal:     o.PriceTotal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OrderView is the full order representation returned by lookups.
type OrderView struct {
	ID             string               `json:"id"`
	CustomerID     string               `json:"customer_id"`
	DriverID       *string              `json:"driver_id,omitempty"`
	PickupAddress  string               `json:"pickup_address"`
	DropoffAddress string               `json:"dropoff_address"`
	DistanceKm     float64              `json:"distance_km"`
	Manifest       order.Manifest       `json:"manifest"`
	Window         string               `json:"window"`
	Status         string               `json:"status"`
	TrackingNumber string               `json:"tracking_number"`
	Price          order.PriceBreakdown `json:"price"`
	PickupTime     *string              `json:"pickup_time,omitempty"`
	DeliveryTime   *string              `json:"delivery_time,omitempty"`
	CreatedAt      string               `json:"created_at"`
	UpdatedAt      string               `json:"updated_at"`
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.fetchOrderView(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// TrackOrder handles GET /api/v1/tracking/:number, the customer-facing lookup.
func (s *Server) TrackOrder(ctx echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(ctx.Param("number"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderByTrackingNumberQuery(trackingNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// ClaimOrderRequest identifies the driver attempting an exclusive claim.
type ClaimOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req ClaimOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionRequest identifies who requests a lifecycle transition. The target
// status is only used by advance.
type TransitionRequest struct {
	Target  string `json:"target,omitempty"`
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	role, err := order.RoleFromString(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	role, err := order.RoleFromString(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// resolveDistance returns the request's distance, resolving addresses through
// the routing service when the client did not supply one. A failed lookup is an
// error; it never degrades to zero distance.
func (s *Server) resolveDistance(ctx echo.Context, req QuoteRequest) (float64, error) {
	if req.DistanceKm != nil {
		return *req.DistanceKm, nil
	}

	result, err := s.distanceProvider.GetDistance(
		ctx.Request().Context(), req.PickupAddress, req.DropoffAddress,
	)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("distance", err)
	}

	return result.DistanceKm(), nil
}

func (s *Server) fetchOrderView(
	ctx echo.Context, orderID kernel.UUID,
) (queries.GetOrderQueryResponse, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}

	return s.getOrderHandler.Handle(ctx.Request().Context(), query)
}

func toOrderView(view queries.GetOrderQueryResponse) OrderView {
	out := OrderView{
		ID:             view.ID.String(),
		CustomerID:     view.CustomerID.String(),
		PickupAddress:  view.PickupAddress,
		DropoffAddress: view.DropoffAddress,
		DistanceKm:     view.DistanceKm,
		Manifest:       view.Manifest,
		Window:         view.Window,
		Status:         view.Status,
		TrackingNumber: view.TrackingNumber,
		Price:          view.Price,
		CreatedAt:      view.CreatedAt.Format(timeFormat),
		UpdatedAt:      view.UpdatedAt.Format(timeFormat),
	}

	if view.DriverID != nil {
		id := view.DriverID.String()
		out.DriverID = &id
	}
	if view.PickupTime != nil {
		t := view.PickupTime.Format(timeFormat)
		out.PickupTime = &t
	}
	if view.DeliveryTime != nil {
		t := view.DeliveryTime.Format(timeFormat)
		out.DeliveryTime = &t
	}

	return out
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain and application errors onto HTTP status codes.
// The race-loss sentinels map to 409 so clients know to re-fetch, while an
// illegal transition is 422: retrying the same request can never succeed.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderNoLongerAvailable),
		errors.Is(err, commands.ErrOrderStateChanged),
		errors.Is(err, errs.ErrStateConflict):
		code = http.StatusConflict
	case errors.Is(err, commands.ErrOperationTimedOut):
		code = http.StatusGatewayTimeout
	case errors.Is(err, order.ErrActorNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
