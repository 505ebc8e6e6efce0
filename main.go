package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"room-reservation/config"
	"room-reservation/console"
	"room-reservation/controllers"
	"room-reservation/models"
	"room-reservation/routes"
	"room-reservation/services"
)

var _ services.Prompter = (*console.Console)(nil)

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't be loaded; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := config.ConnectDatabase(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database connect failed: %w", err)
	}
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	return &app{cfg: cfg, log: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}

func withApp(run func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := setup()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer a.close()
		return run(c, a)
	}
}

func serve(c *cli.Context, a *app) error {
	rooms := services.NewRoomService(a.db, a.log.Named("rooms"))
	reservations := services.NewReservationService(a.db, a.log.Named("reservations"))
	roomController := controllers.NewRoomController(rooms, reservations, a.log.Named("http"))

	router := routes.SetupRouter(roomController, a.cfg.CORSOrigins, a.cfg.AdminAPIKey, a.log.Named("http"))

	addr := ":" + a.cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	a.log.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info("server stopped gracefully")
	return nil
}

func listRooms(c *cli.Context, a *app) error {
	rooms, err := services.NewRoomService(a.db, a.log).ListAll(c.Context)
	if err != nil {
		return err
	}
	out := console.New(os.Stdin, c.App.Writer)
	console.PrintList(out, models.Room.OneLine, rooms, true)
	return nil
}

func availableRooms(c *cli.Context, a *app) error {
	start, err := models.ParseDate(c.String("start"))
	if err != nil {
		return err
	}
	end, err := models.ParseDate(c.String("end"))
	if err != nil {
		return err
	}

	rooms, err := services.NewRoomService(a.db, a.log).GetAvailable(c.Context, start, end)
	if err != nil {
		return err
	}

	out := console.New(os.Stdin, c.App.Writer)
	if len(rooms) == 0 {
		out.Notify("No rooms available for " + models.NewDateRange(start, end).String())
		return nil
	}
	console.PrintList(out, models.Room.OneLine, rooms, true)
	return nil
}

func modifyRoom(c *cli.Context, a *app) error {
	rooms := services.NewRoomService(a.db, a.log.Named("rooms"))
	prompt := console.New(os.Stdin, c.App.Writer)
	return services.NewAdminRoomService(rooms, prompt, a.log.Named("admin")).ModifyRoom(c.Context)
}

func main() {
	cliApp := &cli.App{
		Name:  "rooms",
		Usage: "room inventory and availability service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: withApp(serve),
			},
			{
				Name:   "rooms",
				Usage:  "list all rooms",
				Action: withApp(listRooms),
			},
			{
				Name:  "available",
				Usage: "list rooms free for a date range",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "first night, YYYY-MM-DD", Required: true},
					&cli.StringFlag{Name: "end", Usage: "last night, YYYY-MM-DD", Required: true},
				},
				Action: withApp(availableRooms),
			},
			{
				Name:   "modify-room",
				Usage:  "interactively change a room's type, pet policy or status",
				Action: withApp(modifyRoom),
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
