package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/gifkit/BackgroundRemover/src/aws"
	"github.com/gifkit/BackgroundRemover/src/configure"
	"github.com/gifkit/BackgroundRemover/src/global"
	"github.com/gifkit/BackgroundRemover/src/job"
	"github.com/gifkit/BackgroundRemover/src/task"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

func init() {
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		logrus.Error(s)
	})
	if err != nil {
		logrus.Error("failed to setup panic handler: ", err)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		logrus.Info("GIF Background Remover")
		logrus.Infof("Version: %s", Version)
		logrus.Infof("build.Time: %s", Time)
		logrus.Infof("build.User: %s", User)
	}

	logrus.Debug("config: ", spew.Sdump(config))

	if config.Input == "" || config.Output == "" {
		logrus.Fatal("both --input and --output are required")
	}

	// a missing local input is reported before any decoding starts
	if job.ProviderOf(config.Input) == job.LocalProvider {
		if _, err := os.Stat(config.Input); err != nil {
			fmt.Printf("❌ Input file not found: %s\n", config.Input)
			os.Exit(1)
		}
	}

	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx := global.New(c, config)

	if config.Aws.Region != "" {
		ctx.Instances().AwsS3 = aws.NewS3(ctx)
	}

	t := task.New(job.Job{
		Input:     config.Input,
		Output:    config.Output,
		Threshold: config.Threshold,
	})

	if err := t.Run(ctx); err != nil {
		fmt.Printf("❌ Error processing %s: %s\n", config.Input, err)
		os.Exit(1)
	}

	fmt.Printf("✅ Successfully removed white background from %s\n", config.Input)
	fmt.Printf("   Saved to: %s\n", config.Output)
}
