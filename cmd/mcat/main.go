package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TimelordUK/mcat/internal/driver"
	"github.com/TimelordUK/mcat/internal/logging"
	"github.com/TimelordUK/mcat/internal/render"
)

func main() {
	// A closed pipe on stdout must surface as EPIPE, not kill the process.
	signal.Ignore(syscall.SIGPIPE)

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process status.
func run(args []string, stdin io.Reader, stdout, stderr *os.File) int {
	log, closeLog := logging.New()
	defer closeLog()

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: log}
	root := a.rootCommand()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		log.Error("run failed", "err", err)
		driver.Report(stderr, a.errorStyle(render.ColorAuto), err)
		return 1
	}
	return a.exitCode
}
