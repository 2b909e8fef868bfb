// Devices prints the audio input devices visible to the capture backends.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/parleylabs/go-parley/pkg/audioio"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	devices, err := audioio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devices: %v\n", err)
		os.Exit(1)
	}
	if len(devices) == 0 {
		fmt.Println("no input devices found")
		return
	}
	for _, d := range devices {
		fmt.Println(d)
	}
}
