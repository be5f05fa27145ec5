package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
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

type scanReq struct {
	URL string `json:"url"`
}

type batchReq struct {
	URLs []string `json:"urls"`
}

type scanRec struct {
	URL    string             `json:"url"`
	Result *models.ScanResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

const noDocument = "no security.txt document produced"

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	l := logger.New()
	mux := http.NewServeMux()

	checks := urlcheck.New(10*time.Second, l)
	fetch := fetcher.New(10*time.Second, 5*time.Second, fetcher.SizeLimit, checks, l)
	titles := title.New(10*time.Second, 1<<20, l)
	sc := scanner.New(fetch, enricher.New(checks, titles, l), l)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /scan  { "url": "example.com" }
	mux.HandleFunc("/scan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req scanReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		res, err := sc.Scan(ctx, fetcher.NormalizeTarget(req.URL))
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		if res == nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": noDocument})
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	// POST /scan/batch  { "urls": ["example.com", "..."] }
	mux.HandleFunc("/scan/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req batchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.URLs) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		results := make([]scanRec, len(req.URLs))

		// bounded concurrency
		sem := make(chan struct{}, 10)
		done := make(chan int, len(req.URLs))

		for i, raw := range req.URLs {
			i, raw := i, raw
			sem <- struct{}{} // acquire
			go func() {
				defer func() { <-sem; done <- i }()
				if raw == "" {
					results[i] = scanRec{URL: raw, Error: "empty url"}
					return
				}
				ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
				defer cancel()
				u := fetcher.NormalizeTarget(raw)
				res, err := sc.Scan(ctx, u)
				switch {
				case err != nil:
					results[i] = scanRec{URL: u, Error: err.Error()}
				case res == nil:
					results[i] = scanRec{URL: u, Error: noDocument}
				default:
					results[i] = scanRec{URL: u, Result: res}
				}
			}()
		}
		// wait
		for range req.URLs {
			<-done
		}
		writeJSON(w, http.StatusOK, results)
	})

	// POST /scan/upload (multipart file=...) -> NDJSON stream
	mux.HandleFunc("/scan/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart parse error"})
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file part 'file' required"})
			return
		}
		defer f.Close()

		// copy to temp file to reuse format reader
		tmp, err := os.CreateTemp("", "upload-*")
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "temp file error"})
			return
		}
		if _, err := io.Copy(tmp, f); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "copy error"})
			return
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		targets, err := ioformats.ReadTargets(tmp.Name())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		enc := json.NewEncoder(w)
		var mu sync.Mutex // one record at a time

		sem := make(chan struct{}, 10)
		done := make(chan struct{})

		go func() {
			for _, raw := range targets {
				sem <- struct{}{} // acquire
				raw := raw
				go func() {
					defer func() { <-sem }()
					ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
					defer cancel()
					u := fetcher.NormalizeTarget(raw)
					res, err := sc.Scan(ctx, u)
					rec := scanRec{URL: u, Result: res}
					switch {
					case err != nil:
						rec = scanRec{URL: u, Error: err.Error()}
					case res == nil:
						rec = scanRec{URL: u, Error: noDocument}
					}
					mu.Lock()
					_ = enc.Encode(rec)
					mu.Unlock()
				}()
			}
			// wait for outstanding
			for i := 0; i < cap(sem); i++ {
				sem <- struct{}{} // fill to block until all released
			}
			close(done)
		}()

		<-done
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      logRequest(l, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
