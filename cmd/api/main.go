package main

import (
	"go.uber.org/fx"

	"github.com/ama-bakery/pos/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
