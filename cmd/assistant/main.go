// Parley voice assistant: microphone capture, incremental recognition,
// local LLM generation with fallback, spoken replies.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/parleylabs/go-parley/internal/config"
	"github.com/parleylabs/go-parley/internal/log"
	"github.com/parleylabs/go-parley/pkg/audioio"
	"github.com/parleylabs/go-parley/pkg/dialogue"
	"github.com/parleylabs/go-parley/pkg/generate"
	"github.com/parleylabs/go-parley/pkg/recognize"
	"github.com/parleylabs/go-parley/pkg/tts"
	"github.com/parleylabs/go-parley/pkg/web"
)

type options struct {
	voskURL     string
	device      string
	rate        int
	model       string
	ollamaURL   string
	timeout     time.Duration
	listenFor   time.Duration
	noClean     bool
	httpAddr    string
	ttsBinary   string
	logLevel    string
	audioFormat string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.voskURL, "vosk-url", config.VoskURL(), "vosk-server websocket URL")
	flag.StringVar(&o.device, "device", "default", "audio input device")
	flag.IntVar(&o.rate, "rate", 16000, "sample rate in Hz")
	flag.StringVar(&o.model, "ollama-model", config.OllamaModel(), "generation model name")
	flag.StringVar(&o.ollamaURL, "ollama-url", config.OllamaURL(), "ollama base URL")
	flag.DurationVar(&o.timeout, "timeout", 60*time.Second, "per-request generation timeout")
	flag.DurationVar(&o.listenFor, "listen-timeout", 0, "per-utterance listen timeout (0 = no limit)")
	flag.BoolVar(&o.noClean, "no-clean", false, "disable reply sanitization")
	flag.StringVar(&o.httpAddr, "http", "", "status server listen address (e.g. :8080), empty disables")
	flag.StringVar(&o.ttsBinary, "tts", "espeak", "TTS command")
	flag.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.StringVar(&o.audioFormat, "audio-format", "pulse", "ffmpeg input format (pulse, alsa, avfoundation)")
	flag.Parse()
	return o
}

func main() {
	_ = godotenv.Load()
	o := parseFlags()
	log.Init(o.logLevel)
	logger := log.L()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := audioio.DefaultConfig()
	cfg.Device = o.device
	cfg.SampleRate = o.rate
	cfg.InputFormat = o.audioFormat

	queue := audioio.NewFrameQueue()
	defer queue.Close()

	source, err := audioio.New(cfg, func(f audioio.Frame) { queue.Push(f) })
	if err != nil {
		logger.Error("invalid audio configuration", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	if err := source.Start(ctx); err != nil {
		logger.Error("audio capture failed to start", "error", err)
		printDeviceHelp(ctx)
		os.Exit(1)
	}
	defer source.Stop()

	rec, err := recognize.DialVosk(ctx, o.voskURL, cfg.SampleRate, logger)
	if err != nil {
		logger.Error("recognizer unavailable", "url", o.voskURL, "error", err)
		os.Exit(1)
	}
	defer rec.Close()

	listener := recognize.NewListener(queue, rec, source, logger)
	listener.Timeout = o.listenFor

	genOpts := []generate.Option{
		generate.WithBaseURL(o.ollamaURL),
		generate.WithModel(o.model),
		generate.WithTimeout(o.timeout),
		generate.WithLogger(logger),
	}
	if key := config.OpenAIKey(); key != "" {
		genOpts = append(genOpts, generate.WithOpenAI(key, config.OpenAIBaseURL()))
	}
	client, err := generate.NewClient(genOpts...)
	if err != nil {
		logger.Error("generation client setup failed", "error", err)
		os.Exit(1)
	}

	speaker := tts.NewCommandProvider(o.ttsBinary, logger)
	defer speaker.Close()

	history := dialogue.NewHistory()
	loopOpts := []dialogue.LoopOption{
		dialogue.WithSpeaker(speaker),
		dialogue.WithModel(o.model),
		dialogue.WithHistory(history),
		dialogue.WithLoopLogger(logger),
	}
	if o.noClean {
		loopOpts = append(loopOpts, dialogue.WithoutSanitize())
	}

	if o.httpAddr != "" {
		status := web.NewServer(o.httpAddr, history, o.model)
		status.StartAsync(func(err error) {
			logger.Error("status server failed", "error", err)
		})
		defer status.Shutdown()
		loopOpts = append(loopOpts, dialogue.WithOnTurn(status.RecordTurn))
		logger.Info("status server listening", "addr", o.httpAddr)
	}

	loop, err := dialogue.NewLoop(listener, client, loopOpts...)
	if err != nil {
		logger.Error("dialogue loop setup failed", "error", err)
		os.Exit(1)
	}

	logger.Info("listening", "device", o.device, "model", o.model, "vosk", o.voskURL)
	if err := loop.Run(ctx); err != nil {
		logger.Error("assistant stopped", "error", err)
		printDeviceHelp(context.Background())
		os.Exit(1)
	}
}

// printDeviceHelp lists input devices so a fatal audio error is
// actionable.
func printDeviceHelp(ctx context.Context) {
	devices, err := audioio.ListDevices(ctx)
	if err != nil || len(devices) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "available input devices:")
	for _, d := range devices {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
}
