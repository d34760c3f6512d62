package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mateussf99/sd-middleware-service/internal/enviro/api"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/events"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/repository"
	"github.com/mateussf99/sd-middleware-service/internal/enviro/service"
	"github.com/mateussf99/sd-middleware-service/internal/logging"
	"github.com/mateussf99/sd-middleware-service/internal/metrics"
	"github.com/mateussf99/sd-middleware-service/internal/tracing"
	_ "github.com/mateussf99/sd-middleware-service/migrations/enviro"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	logging.SetupGlobalHandler("enviro-service")

	shutdownTracer, err := tracing.Init("enviro-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	var eventPublisher events.EventPublisher
	eventPublisher, err = events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS, ingest events disabled: %v", err)
		eventPublisher = events.NoopPublisher{}
	} else {
		log.Println("Successfully connected to NATS.")
	}

	neighborhoodRepo := repository.NewPostgresNeighborhoodRepository(db)
	measurementRepo := repository.NewPostgresMeasurementRepository(db)

	ingestService := service.NewIngestService(db, neighborhoodRepo, measurementRepo, eventPublisher)
	reportService := service.NewReportService(neighborhoodRepo, measurementRepo)

	ingestHandler := api.NewIngestHandler(ingestService)
	reportHandler := api.NewReportHandler(reportService)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "enviro-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/ingest", ingestHandler.Ingest)
	app.Post("/ingest_v2", ingestHandler.IngestV2)

	app.Get("/bairros", reportHandler.ListBairros)
	app.Get("/bairros/:name/medicoes", reportHandler.ListMedicoes)
	app.Get("/riscos", reportHandler.RiskReport)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("Listening enviro-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func dbURL() string {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

func connectDB() *sqlx.DB {
	db, err := sqlx.Connect("pgx", dbURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", dbURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations/enviro"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
