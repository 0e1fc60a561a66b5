package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres/couponrepo"
	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/statsrepo"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	var publisher ports.NotificationPublisher
	if configs.RabbitMQURL != "" {
		rabbitPublisher, err := rabbitmq.NewPublisher(configs.RabbitMQURL)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher)

	jobManager := jobs.NewJobManager(app.CreateCouponRepository(), slog.Default())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:    goDotEnvVariable("HTTP_PORT"),
		DBHost:      goDotEnvVariable("DB_HOST"),
		DBPort:      goDotEnvVariable("DB_PORT"),
		DBUser:      goDotEnvVariable("DB_USER"),
		DBPassword:  goDotEnvVariable("DB_PASSWORD"),
		DBName:      goDotEnvVariable("DB_NAME"),
		DBSslMode:   goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL: goDotEnvVariable("RABBITMQ_URL"),
		JWTSecret:   goDotEnvVariable("JWT_SECRET"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderCounterDTO{},
		&courierrepo.CourierDTO{},
		&couponrepo.CouponDTO{},
		&statsrepo.RestaurantStatsDTO{},
		&statsrepo.DishStatsDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateConfirmReceiptCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateUpdateCourierStatusCommandHandler(),
		app.CreateUpdateCourierLocationCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetAvailableOrdersQueryHandler(),
		app.CreateTrackOrderQueryHandler(),
		app.CreateValidateCouponQueryHandler(),
		app.CreateGetCouriersQueryHandler(),
		[]byte(configs.JWTSecret),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
