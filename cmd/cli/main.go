package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sectxt-go-scanner/internal/enricher"
	"sectxt-go-scanner/internal/fetcher"
	"sectxt-go-scanner/internal/ioformats"
	"sectxt-go-scanner/internal/models"
	"sectxt-go-scanner/internal/scanner"
	"sectxt-go-scanner/internal/title"
	"sectxt-go-scanner/internal/urlcheck"
	"sectxt-go-scanner/pkg/logger"
)

func main() {
	target := flag.String("url", "", "single target (host, origin or full security.txt url)")
	in := flag.String("input", "", "input file (csv with 'url'/'target' column or ndjson)")
	out := flag.String("output", "", "output NDJSON file (default stdout)")
	concurrency := flag.Int("concurrency", 10, "worker concurrency")
	flag.Parse()

	if *target == "" && *in == "" {
		fmt.Fprintln(os.Stderr, "missing --url or --input")
		os.Exit(2)
	}

	targets := []string{*target}
	if *in != "" {
		var err error
		targets, err = ioformats.ReadTargets(*in)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read input:", err)
			os.Exit(1)
		}
	}

	log := logger.New()
	checks := urlcheck.New(10*time.Second, log)
	fetch := fetcher.New(10*time.Second, 5*time.Second, fetcher.SizeLimit, checks, log)
	titles := title.New(10*time.Second, 1<<20, log)
	sc := scanner.New(fetch, enricher.New(checks, titles, log), log)

	type outRec struct {
		URL    string             `json:"url"`
		Result *models.ScanResult `json:"result,omitempty"`
		Error  string             `json:"error,omitempty"`
	}

	results := make([]outRec, len(targets))

	sem := make(chan struct{}, *concurrency)
	done := make(chan int, len(targets))

	for i, raw := range targets {
		i, raw := i, raw
		sem <- struct{}{} // acquire
		go func() {
			defer func() { <-sem; done <- i }()
			u := fetcher.NormalizeTarget(raw)
			res, err := sc.Scan(context.Background(), u)
			switch {
			case err != nil:
				results[i] = outRec{URL: u, Error: err.Error()}
			case res == nil:
				results[i] = outRec{URL: u, Error: "no security.txt document produced"}
			default:
				results[i] = outRec{URL: u, Result: res}
			}
		}()
	}
	for range targets {
		<-done
	}

	var w *os.File
	if *out == "" {
		w = os.Stdout
	} else {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create output:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	items := make([]any, len(results))
	for i, r := range results {
		items[i] = r
	}
	if err := ioformats.WriteNDJSON(w, items); err != nil {
		fmt.Fprintln(os.Stderr, "write output:", err)
		os.Exit(1)
	}
}
