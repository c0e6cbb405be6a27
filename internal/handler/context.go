package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"go.dfds.cloud/copilot-seats-api/internal/seats"
	"go.uber.org/zap"
)

const requestContextKey = "requestContext"

// RequestContext is what the router resolves for every API request before
// a handler runs.
type RequestContext struct {
	Scope         seats.Scope
	Org           string
	Ent           string
	Authorization string
	Logger        *zap.Logger
}

// Defaults fill in whatever the inbound request leaves out.
type Defaults struct {
	Scope string
	Org   string
	Ent   string
	Token string
}

func resolveContext(defaults Defaults, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := &RequestContext{
			Scope:         seats.Scope(utils.CopyString(c.Query("scope", defaults.Scope))),
			Org:           utils.CopyString(c.Query("org", defaults.Org)),
			Ent:           utils.CopyString(c.Query("ent", defaults.Ent)),
			Authorization: utils.CopyString(c.Get(fiber.HeaderAuthorization)),
		}
		if rc.Authorization == "" && defaults.Token != "" {
			rc.Authorization = "token " + defaults.Token
		}

		rc.Logger = logger.With(
			zap.String("requestId", requestID(c)),
			zap.String("scope", string(rc.Scope)),
			zap.String("org", rc.Org),
			zap.String("ent", rc.Ent),
		)

		c.Locals(requestContextKey, rc)
		return c.Next()
	}
}

// scopeLabel keeps caller supplied scopes out of metric label values.
func (rc *RequestContext) scopeLabel() string {
	if !rc.Scope.Valid() {
		return "invalid"
	}
	return string(rc.Scope)
}

func requestContext(c *fiber.Ctx) *RequestContext {
	rc, _ := c.Locals(requestContextKey).(*RequestContext)
	return rc
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
