package api

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db             *gorm.DB
	secretKey      []byte
	normalizer     calendar.Normalizer
	dashboardCache cache.DashboardCache
	logger         *zap.Logger
	authLimiter    *attemptLimiter

	repositories *db.Repositories
	moodService  *services.MoodService
	goalService  *services.GoalService
	statsService *services.StatsService
}

// Dependencies are the collaborators a Handler needs. Location, Clock, Cache
// and Logger fall back to UTC, the system clock, no caching and a no-op
// logger.
type Dependencies struct {
	Database  *gorm.DB
	SecretKey string
	Location  *time.Location
	Clock     calendar.Clock
	Cache     cache.DashboardCache
	Logger    *zap.Logger
}

func NewHandler(deps Dependencies) *Handler {
	dashboardCache := deps.Cache
	if dashboardCache == nil {
		dashboardCache = cache.Noop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		db:             deps.Database,
		secretKey:      []byte(deps.SecretKey),
		normalizer:     calendar.NewNormalizer(deps.Location, deps.Clock),
		dashboardCache: dashboardCache,
		logger:         logger,
		authLimiter:    newAttemptLimiter(),
	}
	return handler.withDependencies(deps.Database)
}

// now is read once per request so every day computed for it agrees.
func (handler *Handler) now() time.Time {
	return handler.normalizer.Now()
}
