package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Interrupt aborts the process with a non-zero exit code
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		os.Exit(1)
	}()

	Execute()
}
