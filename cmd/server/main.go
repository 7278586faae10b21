package main

import (
	"log"
	"os"
	"strings"
	"time"

	"homestead/internal/adapter/archive"
	httpadapter "homestead/internal/adapter/http"
	"homestead/internal/adapter/memorystore/sqlite"
	metricsinmem "homestead/internal/adapter/metrics/inmemory"
	gormrepo "homestead/internal/adapter/repo/gorm"
	"homestead/internal/adapter/repo/memory"
	"homestead/internal/app/ports"
	"homestead/internal/app/replay"
	"homestead/internal/app/session"
	"homestead/internal/app/toolbox"
	"homestead/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load(strings.TrimSpace(os.Getenv("HOMESTEAD_SCENARIO")))
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}
	h := cfg.House()
	if err := h.Validate(); err != nil {
		log.Fatalf("scenario house: %v", err)
	}

	eventRepo, deltaRepo, snapRepo, txManager := mustBuildRepos()
	kpiRecorder := metricsinmem.NewRecorder()

	uc := session.UseCase{
		TxManager: txManager,
		EventRepo: eventRepo,
		DeltaRepo: deltaRepo,
		SnapRepo:  snapRepo,
		Metrics:   kpiRecorder,
		Now:       time.Now,
	}

	if path := strings.TrimSpace(os.Getenv("HOMESTEAD_MEMORY_DB")); path != "" {
		store, err := sqlite.Open(path, sqlite.NewSessionID(time.Now()))
		if err != nil {
			log.Fatalf("open memory store: %v", err)
		}
		defer store.Close()
		uc.Perception = store
	}

	if dir := strings.TrimSpace(os.Getenv("HOMESTEAD_ARCHIVE_DIR")); dir != "" {
		writer := archive.NewWriter(dir, "events")
		defer writer.Close()
		uc.Archive = writer
	}

	tb, err := toolbox.BuildToolbox()
	if err != nil {
		log.Fatalf("build toolbox: %v", err)
	}
	sessionUC := session.New(uc, h, tb, cfg.InitialState())

	handler := httpadapter.Handler{
		Session:  sessionUC,
		Events:   eventRepo,
		ReplayUC: replay.UseCase{Events: eventRepo, Initial: cfg.InitialState},
		KPI:      kpiRecorder,
	}

	addr := strings.TrimSpace(os.Getenv("HOMESTEAD_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	handler.RegisterRoutes(s)

	log.Printf("homestead server listening on %s (first actor: %s)", addr, cfg.InitialState().CurrentActor())
	s.Spin()
}

func mustBuildRepos() (ports.EventRepository, ports.StateDeltaRepository, ports.SnapshotRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("HOMESTEAD_DB_DSN"))
	if dsn == "" {
		log.Println("HOMESTEAD_DB_DSN not set, using in-memory repositories")
		store := memory.NewStore()
		return memory.NewEventRepo(store), memory.NewDeltaRepo(store), memory.NewSnapshotRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewEventRepo(db), gormrepo.NewDeltaRepo(db), gormrepo.NewSnapshotRepo(db), gormrepo.NewTxManager(db)
}
