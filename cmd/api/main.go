package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/srgjo27/reservation_engine/internal/adapter/auth"
	"github.com/srgjo27/reservation_engine/internal/adapter/events"
	"github.com/srgjo27/reservation_engine/internal/adapter/handler"
	"github.com/srgjo27/reservation_engine/internal/adapter/repository/memory"
	"github.com/srgjo27/reservation_engine/internal/adapter/repository/postgres"
	"github.com/srgjo27/reservation_engine/internal/adapter/repository/rediscache"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
	"github.com/srgjo27/reservation_engine/internal/core/services"
	"github.com/srgjo27/reservation_engine/internal/platform/cache"
	"github.com/srgjo27/reservation_engine/internal/platform/config"
	"github.com/srgjo27/reservation_engine/internal/platform/database"
	"github.com/srgjo27/reservation_engine/internal/platform/logging"
	"github.com/srgjo27/reservation_engine/internal/platform/scheduler"
	"github.com/srgjo27/reservation_engine/internal/platform/telemetry"
)

type repositories struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	tracking     ports.HostTrackingRepository
	links        ports.ShareLinkRepository
	settings     ports.TenantSettingsRepository
	walkIns      ports.WalkInLedger
	audit        ports.AuditSink
	locker       ports.WindowLocker
	snapshots    ports.SnapshotCache
}

func openStorage(ctx context.Context, cfg config.Config, fallback *memory.Store) (repositories, *sql.DB, error) {
	if cfg.Storage == "memory" {
		log.Println("level=warn msg=\"using in-memory storage, data is lost on restart\"")
		return repositories{
			reservations: fallback.Reservations(),
			codes:        fallback.QRCodes(),
			tracking:     fallback.HostTracking(),
			links:        fallback.ShareLinks(),
			settings:     fallback.TenantSettings(),
			walkIns:      fallback.WalkIns(),
			audit:        fallback.Audit(),
		}, nil, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}

	return repositories{
		reservations: postgres.NewReservationRepository(db),
		codes:        postgres.NewQRCodeRepository(db),
		tracking:     postgres.NewHostTrackingRepository(db),
		links:        postgres.NewShareLinkRepository(db),
		settings:     postgres.NewTenantSettingsRepository(db),
		walkIns:      postgres.NewWalkInRepository(db),
		audit:        postgres.NewAuditRepository(db),
	}, db, nil
}

func main() {
	cfg := config.Load()

	logCloser := logging.Setup(cfg.LogFile)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, "reservation-engine")

	fallback := memory.NewStore()
	repos, db, err := openStorage(ctx, cfg, fallback)
	if err != nil {
		log.Fatalf("level=fatal msg=\"failed to open storage\" err=%v", err)
	}
	if db != nil {
		defer db.Close()
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("level=fatal msg=\"failed to connect to redis\" err=%v", err)
		}
		defer rdb.Close()
		repos.locker = rediscache.NewWindowLock(rdb)
		repos.snapshots = rediscache.NewSnapshotCache(rdb)
	} else {
		log.Println("level=warn msg=\"REDIS_ADDR not set, using process-local lock and cache\"")
		repos.locker = fallback.Locks()
		repos.snapshots = fallback.Snapshots()
	}

	if cfg.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatalf("level=fatal msg=\"failed to connect to nats\" err=%v", err)
		}
		defer publisher.Close()
		repos.audit = events.NewAuditFanout(repos.audit, events.NewAuditPublisher(publisher))
	}

	resolver, err := auth.NewJWTResolver(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("level=fatal msg=\"invalid auth configuration\" err=%v", err)
	}

	policy := services.StoragePolicy{Timeout: cfg.StorageTimeout}
	settings := services.NewTenantSettings(repos.settings, domain.TenantSettings{
		QRWindow:  cfg.QRWindow,
		Location:  cfg.Location(),
		ResetHour: cfg.ResetHour,
	}, policy)

	machine := services.NewStateMachine(repos.reservations, repos.audit, repos.snapshots, policy)
	issuer := services.NewQRIssuer(repos.reservations, repos.codes, repos.snapshots, settings, policy)
	reservationService := services.NewReservationService(repos.reservations, repos.codes, issuer, machine, settings, policy)
	scanner := services.NewScanProcessor(repos.codes, machine, policy)
	recorder := services.NewHostAttendanceRecorder(repos.tracking, repos.walkIns, machine, settings, policy)
	shareService := services.NewShareLinkService(repos.reservations, repos.codes, repos.links, repos.snapshots, settings, policy, cfg.PublicBaseURL)
	reconciler := services.NewReconciliationService(repos.reservations, repos.codes, repos.tracking, repos.walkIns, repos.locker, machine, settings, policy)
	maintenance := services.NewMaintenanceService(repos.reservations, repos.codes, repos.tracking, repos.links, machine, settings, policy)

	sched, err := scheduler.Start(scheduler.Config{
		ReconcileCron:   cfg.ReconcileCron,
		AgingInterval:   cfg.AgingInterval,
		RetentionMonths: cfg.RetentionMonths,
		Location:        cfg.Location(),
	}, scheduler.NewJobs(reconciler, maintenance))
	if err != nil {
		log.Fatalf("level=fatal msg=\"failed to start scheduler\" err=%v", err)
	}

	routes := handler.Routes(handler.Handlers{
		Auth:         handler.NewAuthenticator(resolver),
		Reservations: handler.NewReservationHandler(reservationService, issuer),
		CheckIn:      handler.NewCheckInHandler(scanner, recorder),
		Share:        handler.NewShareHandler(shareService),
		Admin:        handler.NewAdminHandler(reconciler, maintenance),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(handler.LoggingMiddleware(routes), "reservation-engine"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("level=info msg=\"server starting\" addr=%s storage=%s", server.Addr, cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("level=fatal msg=\"server startup failed\" err=%v", err)
		}
	}()

	<-ctx.Done()
	log.Println("level=info msg=\"shutting down server\"")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=error msg=\"server forced to shutdown\" err=%v", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("level=error msg=\"scheduler shutdown failed\" err=%v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("level=error msg=\"tracer shutdown failed\" err=%v", err)
	}

	log.Println("level=info msg=\"server exiting\"")
}
