package main

import (
	"context"
	"os"

	"github.com/daystram/ply/uci"
)

func runUCI(ctx context.Context) error {
	return uci.NewInterface(os.Stdin, os.Stdout).Run(ctx)
}
