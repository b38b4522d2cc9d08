package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/dailyreport/internal/adapters"
	"gitlab.com/ranfdev/dailyreport/internal/db"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/models"
	"gitlab.com/ranfdev/dailyreport/internal/render"
	"gitlab.com/ranfdev/dailyreport/internal/routes"
	"gitlab.com/ranfdev/dailyreport/internal/utils"
	"gitlab.com/ranfdev/dailyreport/web"
)

const usage = `Usage:
	- start
	- migrate [up/down/drop]
	- employee add <code> <name> <GENERAL/ADMIN> <password>
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(usage + "\n")
		return
	}
	envConfig := models.ReadEnvConfig()
	switch os.Args[1] {
	case "start":
		server := DailyReportServer{EnvConfig: envConfig}
		server.Setup()
		server.Run()
	case "migrate":
		if len(os.Args) < 3 {
			fmt.Print(usage + "\n")
			return
		}
		var err error
		switch os.Args[2] {
		case "up":
			err = db.MigrateUp(envConfig.MigrationsURL, envConfig.DatabaseURL)
		case "down":
			err = db.MigrateDown(envConfig.MigrationsURL, envConfig.DatabaseURL)
		case "drop":
			err = db.Drop(envConfig.MigrationsURL, envConfig.DatabaseURL)
		default:
			fmt.Print(usage + "\n")
			return
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Done")
	case "employee":
		if len(os.Args) != 7 || os.Args[2] != "add" {
			fmt.Print(usage + "\n")
			return
		}
		if err := addEmployee(&envConfig, os.Args[3], os.Args[4], os.Args[5], os.Args[6]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Done")
	default:
		fmt.Print(usage + "\n")
	}
}

func addEmployee(envConfig *models.EnvConfig, code, name, role, passwd string) error {
	ctx := context.Background()
	r, ok := domain.ParseRole(role)
	if !ok {
		return fmt.Errorf("unknown role %q, use GENERAL or ADMIN", role)
	}
	pool, err := db.Connect(ctx, envConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	auth := domain.NewAuthService(adapters.NewEmployeeRepo(pool), adapters.NewSessionRepo(pool), envConfig.SessionTTL, envConfig.BcryptCost, utils.GenToken)
	return auth.Register(ctx, &domain.Employee{Code: code, Name: name, Role: r}, passwd)
}

type DailyReportServer struct {
	models.EnvConfig
	addr       string
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	database   *pgxpool.Pool
	templates  *render.Templates
}

func (server *DailyReportServer) setupLogger() {
	var writer io.Writer
	if server.Debug {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		writer = os.Stdout
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	server.logger = zerolog.New(writer).With().Timestamp().Logger()
}
func (server *DailyReportServer) setupTemplates() {
	tmpls, err := render.GetTemplates(&server.EnvConfig, web.FS, server.logger)
	if err != nil {
		server.logger.Fatal().Err(err).Msg("Parsing templates")
	}
	server.templates = tmpls
}
func (server *DailyReportServer) setupDB() {
	err := db.MigrateUp(server.MigrationsURL, server.DatabaseURL)
	if err != nil {
		server.logger.Fatal().Err(err).Send()
	}
	pool, err := db.Connect(context.Background(), &server.EnvConfig)
	if err != nil {
		server.logger.Fatal().AnErr("Connecting to db", err).Send()
	}
	server.database = pool
}
func (server *DailyReportServer) setupRouter() {
	reports := domain.NewReportService(adapters.NewReportRepo(server.database))
	auth := domain.NewAuthService(
		adapters.NewEmployeeRepo(server.database),
		adapters.NewSessionRepo(server.database),
		server.SessionTTL,
		server.BcryptCost,
		utils.GenToken,
	)
	server.router = routes.NewRouter(&server.EnvConfig, reports, auth, server.logger, server.templates)
}
func (server *DailyReportServer) setupHttpServer() {
	server.addr = fmt.Sprintf(":%s", server.Port)
	server.httpServer = &http.Server{
		Addr:         server.addr,
		Handler:      server.router,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
}
func (server *DailyReportServer) Setup() {
	server.setupLogger()
	server.setupTemplates()
	server.setupDB()
	server.setupRouter()
	server.setupHttpServer()
}
func (server *DailyReportServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		server.logger.Error().
			Err(err).
			Msg("Error shutting down")
	}
	server.database.Close()
}
func (server *DailyReportServer) Run() {
	server.logger.Info().Str("server_address", server.addr).Msg("Server is starting")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		err := server.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			server.logger.Fatal().Err(err).Msg("Listening")
		}
	}()
	server.logger.Info().Msg("Ready")

	<-ctx.Done()
	stop() // Stop listening for signals
	server.logger.Info().Msg("Shutting down gracefully")
	server.Shutdown()
}
