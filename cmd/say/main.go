// Say speaks its arguments through the configured TTS command.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/parleylabs/go-parley/internal/log"
	"github.com/parleylabs/go-parley/pkg/tts"
)

func main() {
	binary := flag.String("tts", "espeak", "TTS command")
	fallback := flag.String("tts-fallback", "", "second TTS command tried when the first fails")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log.Init(*logLevel)

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: say [-tts espeak] <text>")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	providers := []tts.Provider{tts.NewCommandProvider(*binary, log.L())}
	if *fallback != "" {
		providers = append(providers, tts.NewCommandProvider(*fallback, log.L()))
	}

	chain, err := tts.NewChain(providers...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "say: %v\n", err)
		os.Exit(1)
	}
	defer chain.Close()

	if err := chain.Speak(ctx, text); err != nil {
		fmt.Fprintf(os.Stderr, "say: %v\n", err)
		os.Exit(1)
	}
}
