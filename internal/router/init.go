package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/application"
	pginfra "github.com/2phishy/phishy-backend/internal/infrastructure/postgres"
	handlers "github.com/2phishy/phishy-backend/internal/interface/http"
	"github.com/2phishy/phishy-backend/internal/router/modules"
	"github.com/2phishy/phishy-backend/pkg/helpers"
)

// Deps carries everything the modules need. All dependencies are passed in
// explicitly; nothing here reaches for process-wide state.
type Deps struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	Logger    *logrus.Logger
	Publisher *helpers.RabbitPublisher
	GCS       *storage.Client
	ES        *elasticsearch.Client

	GCSBucket          string
	ESUsersIndex       string
	CookieDomain       string
	CookieSecure       bool
	LearningPathUpsert bool
}

// InitModules builds the repositories, services and handlers and registers
// every feature module on the registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	paths := pginfra.NewLearningPathRepository(d.Pool)
	assessments := pginfra.NewAssessmentRepository(d.Pool)
	games := pginfra.NewGameRepository(d.Pool)

	userSvc := application.NewUserService(users, d.JWT, d.Redis, d.Logger, d.Publisher, d.GCS, d.GCSBucket, d.ES, d.ESUsersIndex)
	pathSvc := application.NewLearningPathService(paths, d.Logger, d.LearningPathUpsert)
	assessSvc := application.NewAssessmentService(assessments, d.Logger)
	gameSvc := application.NewGameService(games, d.Logger)

	userHandler := handlers.NewUserHandler(userSvc, d.Logger, d.CookieDomain, d.CookieSecure)
	adminHandler := handlers.NewAdminHandler(userSvc, d.Logger)
	pathHandler := handlers.NewLearningPathHandler(pathSvc, d.Logger)
	gameHandler := handlers.NewGameHandler(gameSvc, assessSvc, d.Logger)

	r.Add(modules.NewUserModule(userHandler, users, d.JWT, d.Redis))
	r.Add(modules.NewAdminModule(adminHandler, users, d.JWT, d.Redis))
	r.Add(modules.NewLearningPathModule(pathHandler, users, d.JWT, d.Redis))
	r.Add(modules.NewGameModule(gameHandler, users, d.JWT, d.Redis))
}
