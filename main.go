package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/go-pkgz/lgr"

	"github.com/humblenginr/mp3_vbr_length/scraper"
)

const (
	EnvDebug = "MP3LEN_DEBUG"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mp3len", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "print bitrate, sample rate and frame count")
	decode := fs.Bool("decode", false, "also print the duration summed from decoded frames")
	debug := fs.Bool("debug", envBool(EnvDebug, false), "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: mp3len [-v] [-decode] [-debug] file...")
		return 2
	}
	setupLog(stderr, *debug)

	status := 0
	for _, path := range fs.Args() {
		line, err := describe(path, *verbose, *decode)
		if err != nil {
			log.Printf("[WARN] %s: %v", path, err)
			status = 1
			continue
		}
		fmt.Fprintln(stdout, line)
	}
	return status
}

func describe(path string, verbose, decode bool) (string, error) {
	a, err := scraper.Probe(path)
	if err != nil {
		return "", err
	}

	line := fmt.Sprintf("%s\t%d", path, a.Seconds())
	if verbose {
		line += fmt.Sprintf("\t%d kbps\t%d Hz\t%d frames", a.Bitrate, a.SampleRate, a.Frames)
	}
	if decode && a.Frames > 0 {
		d, err := scraper.Mp3DurationByFrames(path, a.AnchorOffset)
		if err != nil {
			return "", fmt.Errorf("decode: %w", err)
		}
		line += fmt.Sprintf("\tdecoded %.3fs\t%d frames", d.Duration.Seconds(), d.Frames)
	}
	return line, nil
}

// setupLog sends all log levels to w so stdout carries only results.
func setupLog(w io.Writer, debug bool) {
	opts := []log.Option{log.Out(w), log.Err(w)}
	if debug {
		opts = append(opts, log.Debug)
	}
	log.Setup(opts...)
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
