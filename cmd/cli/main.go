package main

import (
	"context"

	"github.com/veritaslab/veritas/internal/client/cli"
	"github.com/veritaslab/veritas/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
