// Listen captures microphone audio and prints finalized utterances.
// Useful for checking a recognizer setup before running the assistant.
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
	"github.com/parleylabs/go-parley/pkg/recognize"
)

func main() {
	_ = godotenv.Load()

	voskURL := flag.String("vosk-url", config.VoskURL(), "vosk-server websocket URL")
	device := flag.String("device", "default", "audio input device")
	rate := flag.Int("rate", 16000, "sample rate in Hz")
	format := flag.String("audio-format", "pulse", "ffmpeg input format")
	timeout := flag.Duration("listen-timeout", 0, "per-utterance timeout (0 = no limit)")
	modelDir := flag.String("verify-model", "", "verify a local vosk model directory and exit")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log.Init(*logLevel)
	logger := log.L()

	if *modelDir != "" {
		if err := recognize.VerifyModelDir(*modelDir); err != nil {
			fmt.Fprintf(os.Stderr, "model check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("model directory looks complete")
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := audioio.DefaultConfig()
	cfg.Device = *device
	cfg.SampleRate = *rate
	cfg.InputFormat = *format

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
		os.Exit(1)
	}
	defer source.Stop()

	rec, err := recognize.DialVosk(ctx, *voskURL, cfg.SampleRate, logger)
	if err != nil {
		logger.Error("recognizer unavailable", "url", *voskURL, "error", err)
		os.Exit(1)
	}
	defer rec.Close()

	listener := recognize.NewListener(queue, rec, source, logger)
	listener.Timeout = *timeout

	fmt.Println("listening (ctrl-c to quit)...")
	for ctx.Err() == nil {
		start := time.Now()
		text, err := listener.ListenOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
		if text == "" {
			continue
		}
		fmt.Printf("[%5.1fs] %s\n", time.Since(start).Seconds(), text)
	}
}
