package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/security"
	"go.uber.org/zap"
)

const (
	authFailureLimit  = 20
	authFailureWindow = 15 * time.Minute
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.authLimiter.tooManyRecent(limiterKey, now, authFailureLimit, authFailureWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}

	userID, err := handler.authenticateRequest(c, now)
	if err != nil {
		handler.authLimiter.addFailure(limiterKey, now, authFailureWindow)
		handler.logger.Debug("rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.authLimiter.reset(limiterKey)
	c.Locals(contextUserKey, userID)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx, now time.Time) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, rawToken, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("missing bearer token")
	}
	return security.ParseToken(handler.secretKey, strings.TrimSpace(rawToken), now)
}
