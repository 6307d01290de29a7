package main

import (
	"fmt"
	"log/slog"
	"os"

	"swiftdrop/cmd"
	httpadapter "swiftdrop/internal/adapters/in/http"
	"swiftdrop/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	distanceProvider, err := app.CreateDistanceProvider(configs)
	if err != nil {
		log.Fatalf("Failed to create distance provider: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateAdvanceOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateCalculateQuoteQueryHandler(),
		app.CreateGetAvailableOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		distanceProvider,
	)

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RoutingServiceURL:    goDotEnvVariable("ROUTING_SERVICE_URL"),
		RoutingServiceAPIKey: goDotEnvVariable("ROUTING_SERVICE_API_KEY"),
		ClaimTimeout:         goDotEnvVariable("CLAIM_TIMEOUT"),
		PendingOrderTTL:      goDotEnvVariable("PENDING_ORDER_TTL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}

func startWebServer(server *httpadapter.Server, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
