package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sintechbr/sst/app/repository"
	"github.com/sintechbr/sst/internal/pkg/database"
	"github.com/sintechbr/sst/internal/pkg/env"
	"github.com/sintechbr/sst/internal/pkg/jobs"
	"github.com/sintechbr/sst/internal/pkg/pdf"
	"github.com/sintechbr/sst/internal/pkg/storage"
	"github.com/sintechbr/sst/internal/pkg/whatsapp"
)

var (
	pipelineSchedule = flag.String("pipeline-schedule", "*/5 * * * *", "Cron schedule for the OS generation pipeline")
	slaSchedule      = flag.String("sla-schedule", "0 * * * *", "Cron schedule for the SLA escalation check")
	runOnce          = flag.Bool("run-once", false, "Run one pipeline tick and exit (for testing)")
	tickTimeout      = flag.Duration("tick-timeout", 4*time.Minute, "Deadline for one pipeline tick")
)

// Standalone scheduler for deployments without an external cron hitting
// /api/jobs/run. Both entrypoints drive the same pipeline.
func main() {
	flag.Parse()

	env.SetupEnvFile()
	database.SetupDatabase()

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	cfg, err := storage.LoadConfig()
	if err != nil {
		log.Fatalf("Storage configuration invalid: %v", err)
	}
	uploader, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatalf("Storage client setup failed: %v", err)
	}

	sender := whatsapp.NewClientFromEnv()
	pipeline := jobs.NewPipeline(repos.Agendamento, repos.OSOrdem, uploader, pdf.NewRenderer(), sender)
	notifier := jobs.NewNotifier(repos.Agendamento, sender)
	slaWatcher := jobs.NewSLAWatcher(repos.Agendamento)

	if *runOnce {
		if err := runTick(pipeline, notifier, *tickTimeout); err != nil {
			log.Fatalf("Pipeline tick failed: %v", err)
		}
		log.Println("Pipeline tick completed successfully")
		return
	}

	c := cron.New()

	_, err = c.AddFunc(*pipelineSchedule, func() {
		if err := runTick(pipeline, notifier, *tickTimeout); err != nil {
			log.Printf("Pipeline tick failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule pipeline: %v", err)
	}

	_, err = c.AddFunc(*slaSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), *tickTimeout)
		defer cancel()

		if _, err := slaWatcher.Run(ctx); err != nil {
			log.Printf("SLA check failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule SLA check: %v", err)
	}

	c.Start()
	log.Println("Sintech job runner started")
	log.Printf("Pipeline schedule: %s", *pipelineSchedule)
	log.Printf("SLA check schedule: %s", *slaSchedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down gracefully...")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	log.Println("Job runner stopped")
}

func runTick(pipeline *jobs.Pipeline, notifier *jobs.Notifier, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := notifier.Run(ctx); err != nil {
		log.Printf("Notifier tick failed: %v", err)
	}

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	log.Println(summary.String())
	return nil
}
