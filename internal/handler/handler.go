package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.dfds.cloud/copilot-seats-api/internal"
	"go.dfds.cloud/copilot-seats-api/internal/github"
	"go.dfds.cloud/copilot-seats-api/internal/seats"
	"go.uber.org/zap"
)

type SeatsFetcher interface {
	Fetch(ctx context.Context, req seats.Request) ([]github.Seat, error)
}

type GraphQLProxy interface {
	ProxyGraphQL(ctx context.Context, authorization string, body []byte) (int, []byte, error)
}

type Handler struct {
	seats  SeatsFetcher
	proxy  GraphQLProxy
	logger *zap.Logger
}

func New(seats SeatsFetcher, proxy GraphQLProxy, logger *zap.Logger) *Handler {
	return &Handler{seats: seats, proxy: proxy, logger: logger}
}

// NewApp builds the fiber application serving the API, health, metrics and
// pprof routes.
func NewApp(h *Handler, defaults Defaults) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(pprof.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", resolveContext(defaults, h.logger))
	api.Get("/seats", h.GetSeats)
	api.Post("/graphql", h.ProxyGraphQL)

	return app
}

func (h *Handler) GetSeats(c *fiber.Ctx) error {
	rc := requestContext(c)

	result, err := h.seats.Fetch(c.UserContext(), seats.Request{
		Scope:         rc.Scope,
		Org:           rc.Org,
		Ent:           rc.Ent,
		Authorization: rc.Authorization,
		Logger:        rc.Logger,
	})
	if err != nil {
		return h.handleError(c, rc, err)
	}

	internal.SeatsRequests.WithLabelValues(rc.scopeLabel(), strconv.Itoa(fiber.StatusOK)).Inc()
	internal.SeatsReturned.WithLabelValues(rc.scopeLabel()).Set(float64(len(result)))
	return c.JSON(result)
}

func (h *Handler) handleError(c *fiber.Ctx, rc *RequestContext, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var reqErr *seats.RequestError
	if errors.As(err, &reqErr) {
		status = reqErr.Status
		message = reqErr.Message
	} else {
		rc.Logger.Error("unexpected error serving seats", zap.Error(err))
	}

	internal.SeatsRequests.WithLabelValues(rc.scopeLabel(), strconv.Itoa(status)).Inc()
	return c.Status(status).SendString(message)
}

// ProxyGraphQL relays a GraphQL query to GitHub with the caller's credentials.
func (h *Handler) ProxyGraphQL(c *fiber.Ctx) error {
	rc := requestContext(c)
	if rc.Authorization == "" {
		return c.Status(fiber.StatusUnauthorized).SendString("No Authentication provided")
	}

	status, body, err := h.proxy.ProxyGraphQL(c.UserContext(), rc.Authorization, c.Body())
	if err != nil {
		rc.Logger.Error("graphql proxy failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).SendString("Error proxying graphql request. Error: " + err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
