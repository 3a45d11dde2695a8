package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ittoolkit/itk/cmd"
	"github.com/ittoolkit/itk/internal/console"
	"github.com/ittoolkit/itk/internal/version"
	"github.com/ittoolkit/itk/sentry"
)

func main() {
	console.Init()

	if err := initSentry(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer sentry.Flush(5 * time.Second)

	defer sentry.CapturePanic(&sentry.EventOptions{
		Tags: sentry.NewTags().Set("version", version.BuildVersion),
	})

	cmd.Execute()
}

// initSentry enables reporting when a DSN was injected at build time.
func initSentry() error {
	return sentry.Init(sentry.Config{
		DSN:            version.SentryDSN,
		Environment:    sentry.Environment(version.BuildVersion),
		Release:        "itk@" + version.BuildVersion,
		SampleRate:     1.0,
		FilteredErrors: []string{"operation cancelled"},
		ServiceName:    "itk",
		InstanceID:     sentry.InstanceID(),
	})
}
