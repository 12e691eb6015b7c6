// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"github.com/ik5/dcadec/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.New(afero.NewOsFs()).Run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
