// Package http exposes a small read-only admin API over the live server
// state and the delivery journal.
package http

import (
	"net/http"
	"strconv"

	"pizzadelivery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location is a grid position in responses.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Order is one open order as returned by GET /api/v1/orders.
type Order struct {
	ID               string   `json:"id"`
	Status           string   `json:"status"`
	PizzaType        string   `json:"pizzaType"`
	Address          string   `json:"address"`
	Location         Location `json:"location"`
	ReadyForPickup   bool     `json:"readyForPickup"`
	DriverID         string   `json:"driverId,omitempty"`
	EstimatedSeconds int      `json:"estimatedSeconds"`
}

// Server serves the admin routes. Deliveries are optional: without a
// journal database the route answers 503.
type Server struct {
	getStatsHandler                 queries.GetStatsQueryHandler
	getUncompletedOrdersHandler     queries.GetUncompletedOrdersQueryHandler
	getActiveDriverLocationsHandler queries.GetActiveDriverLocationsQueryHandler
	getRecentDeliveriesHandler      *queries.GetRecentDeliveriesQueryHandler
}

// NewServer creates the admin server. getRecentDeliveriesHandler may be nil.
func NewServer(
	getStatsHandler queries.GetStatsQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getActiveDriverLocationsHandler queries.GetActiveDriverLocationsQueryHandler,
	getRecentDeliveriesHandler *queries.GetRecentDeliveriesQueryHandler,
) *Server {
	return &Server{
		getStatsHandler:                 getStatsHandler,
		getUncompletedOrdersHandler:     getUncompletedOrdersHandler,
		getActiveDriverLocationsHandler: getActiveDriverLocationsHandler,
		getRecentDeliveriesHandler:      getRecentDeliveriesHandler,
	}
}

// RegisterRoutes mounts the admin routes on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/stats", s.GetStats)
	api.GET("/orders", s.GetOrders)
	api.GET("/drivers/active", s.GetActiveDrivers)
	api.GET("/deliveries", s.GetDeliveries)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetStats handles GET /api/v1/stats - counters over the live state.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.getStatsHandler.Handle(ctx.Request().Context(), queries.NewGetStatsQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve stats")
	}

	return ctx.JSON(http.StatusOK, stats)
}

// GetOrders handles GET /api/v1/orders - every order not yet delivered.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:        o.ID,
			Status:    o.Status,
			PizzaType: o.PizzaType,
			Address:   o.Address,
			Location: Location{
				X: int(o.Location.X()),
				Y: int(o.Location.Y()),
			},
			ReadyForPickup:   o.ReadyForPickup,
			DriverID:         o.DriverID,
			EstimatedSeconds: o.EstimatedSeconds,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDrivers handles GET /api/v1/drivers/active - drivers holding an order.
func (s *Server) GetActiveDrivers(ctx echo.Context) error {
	drivers, err := s.getActiveDriverLocationsHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveDriverLocationsQuery(),
	)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve drivers")
	}

	if drivers == nil {
		drivers = []queries.DriverLocation{}
	}
	return ctx.JSON(http.StatusOK, drivers)
}

// GetDeliveries handles GET /api/v1/deliveries?limit=N - newest journal entries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	if s.getRecentDeliveriesHandler == nil {
		return errorJSON(ctx, http.StatusServiceUnavailable, "Delivery journal is not configured")
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid limit: "+raw)
		}
		limit = n
	}

	query, err := queries.NewGetRecentDeliveriesQuery(limit)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid limit: "+err.Error())
	}

	deliveries, err := s.getRecentDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
