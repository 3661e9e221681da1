package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openims/ims-server/config"
	"github.com/openims/ims-server/internal/adminapi"
	"github.com/openims/ims-server/internal/app"
	"github.com/openims/ims-server/internal/webserver"
	"go.uber.org/zap"
)

var (
	cfile    = flag.String("c", "/etc/ims-server.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
	BuildVer = "dev"
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("ims-server", BuildVer)
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ws := webserver.Init(cfg, application.DB())
	adminapi.Setup(application.Inventory(), application.Reports(), application.Mailer(), application.ConfigMgr())

	errc := make(chan error, 1)
	go func() {
		errc <- ws.Listen()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
		}
	case sig := <-sigc:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ws.Shutdown(ctx); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
