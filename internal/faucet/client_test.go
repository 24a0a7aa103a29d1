package faucet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnqueue(t *testing.T) {
	var gotAddr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Address string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotAddr = req.Address
		json.NewEncoder(w).Encode(Response{Address: req.Address, WaitingEntries: 2})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Enqueue("thd1qexample")
	if err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if gotAddr != "thd1qexample" {
		t.Errorf("server saw address %q, want thd1qexample", gotAddr)
	}
	if resp.WaitingEntries != 2 {
		t.Errorf("WaitingEntries = %d, want 2", resp.WaitingEntries)
	}
}

func TestEnqueue_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(Response{Error: "address already in queue"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Enqueue("thd1qexample")
	if err == nil {
		t.Fatal("Enqueue() should relay a faucet rejection")
	}
	if got := err.Error(); got != "faucet rejected request: address already in queue" {
		t.Errorf("error = %q", got)
	}
}

func TestEnqueue_PlainTextReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Enqueue("thd1qexample")
	if err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if resp.Message != "ok" {
		t.Errorf("Message = %q, want ok", resp.Message)
	}
}

func TestEnqueue_Unreachable(t *testing.T) {
	_, err := New("http://127.0.0.1:1").Enqueue("thd1qexample")
	if err == nil {
		t.Fatal("Enqueue() to unreachable faucet should fail")
	}
}
