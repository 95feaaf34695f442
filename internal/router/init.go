package router

import (
	"github.com/nextstep/school-api/internal/application"
	"github.com/nextstep/school-api/internal/container"
	pginfra "github.com/nextstep/school-api/internal/infrastructure/postgres"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/router/modules"
)

// InitModules builds every repository, service and handler from the
// container singletons and registers one module per feature. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	schedules := pginfra.NewScheduleRepository(pool)
	documents := pginfra.NewDocumentRepository(pool)
	polls := pginfra.NewPollRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)
	activities := pginfra.NewActivityRepository(pool)

	activity := application.NewActivityLogger(activities, logger)

	google := application.NewGoogleVerifier(cfg.GoogleAudiences(), logger)
	authSvc := application.NewAuthService(users, container.GetJWT(), google, logger)

	docSvc := application.NewDocumentService(documents, container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESDocumentsIndex, logger)
	notifSvc := application.NewNotificationService(notifications, users, container.GetRedis(),
		container.GetRabbitPub(), cfg.MailSendEnabled, logger)
	dashSvc := application.NewDashboardService(users, schedules, documents, notifications,
		container.GetRedis(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, logger), users))
	r.Add(modules.NewScheduleModule(handlers.NewScheduleHandler(schedules, activity, logger), users))
	r.Add(modules.NewDocumentModule(handlers.NewDocumentHandler(docSvc, activity, logger), users))
	r.Add(modules.NewPollModule(handlers.NewPollHandler(polls, activity, logger), users))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notifSvc, logger), users))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(dashSvc, activity, logger), users))
}
