package main

import (
	_ "embed"
	"log"
	"net/http"
	"time"
)

//go:embed search.json
var searchData []byte

//go:embed videos.json
var videosData []byte

func main() {
	http.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(searchData); err != nil {
			log.Printf("[YouTube mock] Write error: %v", err)
		}

		log.Printf("[YouTube mock] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(videosData); err != nil {
			log.Printf("[YouTube mock] Write error: %v", err)
		}

		log.Printf("[YouTube mock] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[YouTube mock] Health write error: %v", err)
		}
	})

	log.Println("Mock YouTube Data API running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
