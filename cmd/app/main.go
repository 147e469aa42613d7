package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"loans/cmd"
	httpin "loans/internal/adapters/in/http"
	"loans/internal/adapters/out/postgres/loanorderrepo"
	"loans/internal/adapters/out/postgres/salesservice"
	"loans/internal/adapters/out/postgres/stockservice"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		RequireResponsible:  goDotEnvBool("LOANS_REQUIRE_RESPONSIBLE"),
		AutoCompleteReturns: goDotEnvBool("LOANS_AUTO_COMPLETE_RETURNS"),
		AllowEditCompleted:  goDotEnvBool("LOANS_ALLOW_EDIT_COMPLETED"),
		DueDateReminderDays: goDotEnvInt("LOANS_DUE_DATE_REMINDER_DAYS"),
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

func goDotEnvBool(key string) bool {
	value, err := strconv.ParseBool(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid boolean for %s", key)
	}
	return value
}

func goDotEnvInt(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid integer for %s", key)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&loanorderrepo.OrderDTO{},
		&loanorderrepo.LineItemDTO{},
		&loanorderrepo.AllocationDTO{},
		&loanorderrepo.ConversionDTO{},
		&loanorderrepo.ExtraLineDTO{},
		&stockservice.StockItemDTO{},
		&stockservice.StockMovementDTO{},
		&salesservice.SalesOrderDTO{},
		&salesservice.SalesOrderLineDTO{},
		&salesservice.SalesAllocationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAddLineItemCommandHandler(),
		app.CreateRemoveLineItemCommandHandler(),
		app.CreateAddExtraLineCommandHandler(),
		app.CreateApproveOrderCommandHandler(),
		app.CreateIssueOrderCommandHandler(),
		app.CreateHoldOrderCommandHandler(),
		app.CreateResumeOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateReturnOrderCommandHandler(),
		app.CreateWriteOffOrderCommandHandler(),
		app.CreateConvertOrderCommandHandler(),
		app.CreateShipItemsCommandHandler(),
		app.CreateShipAllCommandHandler(),
		app.CreateReturnItemsCommandHandler(),
		app.CreateConvertLineItemsCommandHandler(),
		app.CreateSellReturnedItemsCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOverdueOrdersQueryHandler(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
