package main

import (
	"context"
	"log"
	"os"

	"github.com/orionapp/companion/internal/buildinfo"
	"github.com/orionapp/companion/internal/client/cli"
	"github.com/orionapp/companion/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	app.Run(ctx)
}
