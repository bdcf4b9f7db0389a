// sockui - a terminal UI served over a raw TCP socket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sockui/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sockui: %v\n", err)
		os.Exit(1)
	}
}
