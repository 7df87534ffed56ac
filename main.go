package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/Ramsey-B/clover/config"
	dealrepo "github.com/Ramsey-B/clover/internal/repositories/deal"
	documentrepo "github.com/Ramsey-B/clover/internal/repositories/document"
	firmrepo "github.com/Ramsey-B/clover/internal/repositories/firm"
	investorrepo "github.com/Ramsey-B/clover/internal/repositories/investor"
	matchrepo "github.com/Ramsey-B/clover/internal/repositories/match"
	startuprepo "github.com/Ramsey-B/clover/internal/repositories/startup"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/middleware"
	"github.com/Ramsey-B/clover/pkg/processor"
	"github.com/Ramsey-B/clover/pkg/redis"
	dealroute "github.com/Ramsey-B/clover/pkg/routes/deal"
	documentroute "github.com/Ramsey-B/clover/pkg/routes/document"
	firmroute "github.com/Ramsey-B/clover/pkg/routes/firm"
	"github.com/Ramsey-B/clover/pkg/routes/health"
	investorroute "github.com/Ramsey-B/clover/pkg/routes/investor"
	matchroute "github.com/Ramsey-B/clover/pkg/routes/match"
	startuproute "github.com/Ramsey-B/clover/pkg/routes/startup"
	weightsroute "github.com/Ramsey-B/clover/pkg/routes/weights"
	"github.com/Ramsey-B/clover/pkg/startup"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/tracing/exporters"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := newZapLogger(cfg)
	defer zapLogger.Sync()
	logger := ectologger.NewEctoLogger(zapSink(zapLogger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.TracingEnabled {
		shutdown, err := initTracing(ctx, cfg)
		if err != nil {
			logger.WithError(err).Error("Failed to initialize tracing")
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	var (
		sqlxDB      *sqlx.DB
		db          database.DB
		redisClient *redis.Client
		producer    *kafka.Producer
		consumer    *kafka.Consumer
		checker     *health.Checker
		e           *echo.Echo
	)

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)

	boot.AddDependency(&dependency{
		name: "postgres",
		start: func(ctx context.Context) error {
			dsn := fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
				cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
			)
			var err error
			sqlxDB, err = sqlx.ConnectContext(ctx, cfg.DatabaseDriver, dsn)
			if err != nil {
				return err
			}
			sqlxDB.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
			sqlxDB.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
			sqlxDB.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)
			db = database.NewDatabaseInstance(sqlxDB, logger)
			return nil
		},
		stop: func(ctx context.Context) error {
			if sqlxDB != nil {
				return sqlxDB.Close()
			}
			return nil
		},
	})

	boot.AddDependency(&dependency{
		name:      "migrations",
		dependsOn: []string{"postgres"},
		start: func(ctx context.Context) error {
			driver, err := migratepg.WithInstance(sqlxDB.DB, &migratepg.Config{})
			if err != nil {
				return err
			}
			ms := database.NewMigrationService(logger, &database.MigrationConfig{
				MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
				Version:             uint(cfg.DatabaseMigrationVersion),
				Force:               cfg.DatabaseMigrationForce,
				AutoRollback:        cfg.DatabaseMigrationAutoRollback,
			})
			return ms.Migrate(cfg.DatabaseName, driver)
		},
	})

	boot.AddDependency(&dependency{
		name: "redis",
		start: func(ctx context.Context) error {
			var err error
			redisClient, err = redis.NewClient(redis.Config{
				Host:     cfg.RedisHost,
				Port:     cfg.RedisPort,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}, logger)
			return err
		},
		stop: func(ctx context.Context) error {
			if redisClient != nil {
				return redisClient.Close()
			}
			return nil
		},
	})

	boot.AddDependency(&dependency{
		name:      "kafka",
		dependsOn: []string{"postgres", "migrations"},
		start: func(ctx context.Context) error {
			producer = kafka.NewProducer(kafka.ProducerConfig{
				Brokers:      cfg.KafkaBrokers,
				Topic:        cfg.KafkaOutputTopic,
				BatchSize:    cfg.KafkaBatchSize,
				BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
				RequiredAcks: cfg.KafkaRequiredAcks,
				Compression:  cfg.KafkaCompression,
			}, logger)

			if !cfg.KafkaConsumerEnabled {
				return nil
			}

			emitter := events.NewEmitter(producer, logger)
			engine := newEngine(cfg, logger, db)
			proc := processor.NewProcessor(logger, dealrepo.NewRepository(db, logger), engine, emitter)
			consumer = kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:       cfg.KafkaBrokers,
				Topic:         cfg.KafkaDealEventsTopic,
				ConsumerGroup: cfg.KafkaConsumerGroup,
			}, logger, proc.HandleMessage)
			return consumer.Start(ctx)
		},
		stop: func(ctx context.Context) error {
			if consumer != nil {
				if err := consumer.Stop(); err != nil {
					return err
				}
			}
			if producer != nil {
				return producer.Close()
			}
			return nil
		},
	})

	boot.AddDependency(&dependency{
		name:      "http",
		dependsOn: []string{"postgres", "migrations", "redis", "kafka"},
		start: func(ctx context.Context) error {
			if err := registerDependencies(cfg, logger, db, redisClient, producer); err != nil {
				return err
			}

			e = echo.New()
			e.HideBanner = true
			e.HidePort = true
			e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
			e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
			e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
			e.Server.ReadHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
			e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

			e.HTTPErrorHandler = middleware.Error(logger)
			e.Use(otelecho.Middleware(cfg.AppName))
			e.Use(middleware.Context())
			e.Use(middleware.Logger(logger))

			e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

			checker = health.NewChecker(sqlxDB, redisClient, version)
			checker.RegisterRoutes(e)

			api := e.Group("/api/v1")
			startuproute.Register(api.Group("/startups"))
			matchroute.RegisterStartupMatches(api.Group("/startups"))
			documentroute.Register(api.Group("/startups"))
			investorroute.Register(api.Group("/investors"))
			firmroute.Register(api.Group("/firms"))
			matchroute.Register(api.Group("/matches"))
			weightsroute.Register(api.Group("/weights"))
			dealroute.Register(api.Group("/deals"))

			go func() {
				addr := fmt.Sprintf(":%d", cfg.Port)
				logger.Infof("Starting HTTP server on %s", addr)
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.WithError(err).Error("HTTP server stopped unexpectedly")
					cancel()
				}
			}()

			checker.SetReady(true)
			return nil
		},
		stop: func(ctx context.Context) error {
			if checker != nil {
				checker.SetReady(false)
			}
			if e != nil {
				return e.Shutdown(ctx)
			}
			return nil
		},
	})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := boot.Stop(stopCtx); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
		os.Exit(1)
	}
}

// dependency adapts closures to the startup DAG interface
type dependency struct {
	name      string
	dependsOn []string
	start     func(ctx context.Context) error
	stop      func(ctx context.Context) error
}

func (d *dependency) GetName() string     { return d.name }
func (d *dependency) DependsOn() []string { return d.dependsOn }
func (d *dependency) Start(ctx context.Context) error {
	if d.start == nil {
		return nil
	}
	return d.start(ctx)
}
func (d *dependency) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	return d.stop(ctx)
}

func newEngine(cfg *config.Config, logger ectologger.Logger, db database.DB) *matching.Engine {
	return matching.NewEngine(
		logger,
		startuprepo.NewRepository(db, logger),
		investorrepo.NewRepository(db, logger),
		firmrepo.NewRepository(db, logger),
		documentrepo.NewRepository(db, logger),
		matchrepo.NewRepository(db, logger),
		dealrepo.NewRepository(db, logger),
		matching.Config{
			DefaultLimit:       cfg.MatchDefaultLimit,
			InclusionScore:     cfg.MatchInclusionScore,
			BlendRatio:         cfg.MatchLearnedBlendRatio,
			MinFeedbackSignals: cfg.MatchMinFeedbackSignals,
		},
	)
}

// registerDependencies wires everything the route handlers resolve from the
// request context.
func registerDependencies(cfg *config.Config, logger ectologger.Logger, db database.DB, redisClient *redis.Client, producer *kafka.Producer) error {
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return err
	}

	emitter := events.NewEmitter(producer, logger)
	engine := newEngine(cfg, logger, db)
	locker := redis.NewLocker(redisClient, "clover:lock:")

	registrations := []error{
		ectoinject.RegisterInstance[*config.Config](container, cfg),
		ectoinject.RegisterInstance[ectologger.Logger](container, logger),
		ectoinject.RegisterInstance[database.DB](container, db),
		ectoinject.RegisterInstance[*startuprepo.Repository](container, startuprepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*investorrepo.Repository](container, investorrepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*firmrepo.Repository](container, firmrepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*matchrepo.Repository](container, matchrepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*dealrepo.Repository](container, dealrepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*documentrepo.Repository](container, documentrepo.NewRepository(db, logger)),
		ectoinject.RegisterInstance[*matching.Engine](container, engine),
		ectoinject.RegisterInstance[*redis.Locker](container, locker),
		ectoinject.RegisterInstance[*events.Emitter](container, emitter),
	}
	for _, regErr := range registrations {
		if regErr != nil {
			return regErr
		}
	}
	return nil
}

func initTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingOTLPEndpoint,
		Protocol: cfg.TracingOTLPProtocol,
		Insecure: cfg.TracingOTLPInsecure,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.AppName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	return tp.Shutdown, nil
}

func newZapLogger(cfg *config.Config) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapCfg = zap.NewDevelopmentConfig()
	}
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// zapSink bridges ectologger messages onto zap
func zapSink(z *zap.Logger) func(ectologger.EctoLogMessage) {
	return func(msg ectologger.EctoLogMessage) {
		fields := make([]zap.Field, 0, len(msg.Fields)+1)
		for k, v := range msg.Fields {
			fields = append(fields, zap.Any(k, v))
		}
		if msg.Err != nil {
			fields = append(fields, zap.Error(msg.Err))
		}

		switch strings.ToLower(string(msg.Level)) {
		case "debug":
			z.Debug(msg.Message, fields...)
		case "warn", "warning":
			z.Warn(msg.Message, fields...)
		case "error", "fatal":
			z.Error(msg.Message, fields...)
		default:
			z.Info(msg.Message, fields...)
		}
	}
}
