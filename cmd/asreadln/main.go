package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	_ "github.com/xaionaro-go/asreadln/pkg/audio/backends/oto"
	_ "github.com/xaionaro-go/asreadln/pkg/audio/backends/portaudio"
	_ "github.com/xaionaro-go/asreadln/pkg/audio/backends/pulseaudio"
	"github.com/xaionaro-go/asreadln/pkg/config"
	"github.com/xaionaro-go/observability"
)

func main() {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	flags := config.NewFlags(pflag.CommandLine)
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	cfg, err := flags.Load()
	if err != nil {
		exit(ctx, 2, err)
	}

	// the first SIGINT/SIGTERM only stops the capture, see run
	captureCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	if err := run(ctx, captureCtx, stopSignals, cfg, os.Stdout); err != nil {
		exit(ctx, 1, err)
	}
	belt.Flush(ctx)
}

func exit(ctx context.Context, code int, err error) {
	logger.Debugf(ctx, "exiting with code %d: %v", code, err)
	belt.Flush(ctx)
	fmt.Fprintf(os.Stderr, "asreadln: %v\n", err)
	os.Exit(code)
}
