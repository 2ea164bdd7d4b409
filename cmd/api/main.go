package main

import (
	"context"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google/googleclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/metaclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/naver"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/naver/naverclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/lock"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/api"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/api/handler"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/scheduler"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/authenticating"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/credentialing"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/jobrunning"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	// Formato padrão até a configuração ser lida
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := log.Configure(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	health := map[string]handler.Pinger{"postgres": pgConn}

	locker, closeLocker := newLocker(ctx, cfg.Redis, health)
	defer closeLocker()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	secretRepo := repository.NewSecretRepository(pgConn)
	jobRepo := repository.NewCollectionJobRepository(pgConn)

	sinks := collecting.Sinks{
		Performance:  repository.NewAdPerformanceRepository(pgConn),
		Demographics: repository.NewDemographicRepository(pgConn),
		Creatives:    repository.NewCreativeRepository(pgConn),
	}

	metaClient := metaclient.NewClient(cfg.Meta)

	registry := collecting.NewRegistry(
		google.New(cfg.Google, googleclient.NewClient(cfg.Google), sinks),
		meta.New(cfg.Meta, metaClient, sinks),
		naver.New(cfg.Naver, naverclient.NewClient(cfg.Naver), sinks),
	)

	resolver := credentialing.NewResolver(credentialing.Config{
		Google: cfg.Google,
		Meta:   cfg.Meta,
		Naver:  cfg.Naver,
	}, secretRepo, metaClient)

	runnerService := jobrunning.NewService(cfg.JobRunner, jobRepo, integrationRepo, registry, resolver, locker)
	triggerService := triggering.NewService(cfg.DailyTrigger, integrationRepo, registry, runnerService, locker)

	dailyTriggerScheduler, err := scheduler.NewDailyTriggerService(cfg.DailyTrigger, triggerService)
	if err != nil {
		logrus.WithError(err).Fatal("Configuração inválida do disparo diário de coleta")
	}
	jobRunnerScheduler := scheduler.NewJobRunnerService(cfg.JobRunner, runnerService)

	if err := dailyTriggerScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do disparo diário de coleta")
	} else {
		logrus.Info("Agendador do disparo diário de coleta iniciado com sucesso")
	}

	if err := jobRunnerScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do processador de jobs de coleta")
	} else {
		logrus.Info("Agendador do processador de jobs de coleta iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Trigger:       triggerService,
		Runner:        runnerService,
		Authenticator: authenticating.NewService(cfg.Auth),
		Crons: handler.CronJobServices{
			DailyTrigger: dailyTriggerScheduler,
			JobRunner:    jobRunnerScheduler,
		},
		Health: health,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newLocker usa o Redis quando REDIS_URL está definido; sem ele a exclusão vale só para este processo
func newLocker(ctx context.Context, cfg config.Redis, health map[string]handler.Pinger) (lock.Locker, func()) {
	if cfg.URL == "" {
		logrus.Warn("REDIS_URL não configurado, usando lock em memória (apenas um processo)")
		return lock.NewLocalLocker(), func() {}
	}

	locker, err := lock.NewRedisLockerFromURL(ctx, cfg.URL)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	health["redis"] = locker
	logrus.Info("Conexão com Redis estabelecida com sucesso")

	return locker, func() {
		if err := locker.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com Redis")
		}
	}
}
