package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Klingon-tech/threadnet-wallet/internal/rpc"
	"github.com/Klingon-tech/threadnet-wallet/pkg/types"
)

func TestPromptSend_RejectsInvalidAddress(t *testing.T) {
	called := false
	srv := testNode(t, map[string]func(json.RawMessage) (interface{}, *rpc.Error){
		"account_send": func(json.RawMessage) (interface{}, *rpc.Error) {
			called = true
			return rpc.AccountSendResult{TxHash: "cafe"}, nil
		},
	})
	s := newTestSession(t, srv.URL)

	err := s.runPromptCommand("send", []string{"not-a-bech32-address", "1"})
	if err == nil {
		t.Fatal("send with a malformed address should fail locally")
	}
	if !strings.Contains(err.Error(), "invalid recipient address") {
		t.Errorf("error = %q", err)
	}
	if called {
		t.Error("malformed address reached the engine")
	}
}

func TestPromptSendNative_RejectsBadInput(t *testing.T) {
	called := false
	srv := testNode(t, map[string]func(json.RawMessage) (interface{}, *rpc.Error){
		"account_sendToken": func(json.RawMessage) (interface{}, *rpc.Error) {
			called = true
			return rpc.AccountSendResult{TxHash: "f00d"}, nil
		},
	})
	s := newTestSession(t, srv.URL)

	var addr types.Address
	addr[0] = 1
	goodAddr := addr.String()
	goodToken := types.TokenID{0xab}.String()

	tests := []struct {
		name string
		args []string
	}{
		{"bad address", []string{"nonsense", goodToken, "10"}},
		{"bad token", []string{goodAddr, "zz", "10"}},
		{"trailing garbage amount", []string{goodAddr, goodToken, "10abc"}},
		{"negative amount", []string{goodAddr, goodToken, "-3"}},
		{"amount over cap", []string{goodAddr, goodToken, "2000000000000000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.runPromptCommand("send-native", tt.args); err == nil {
				t.Error("send-native should fail locally")
			}
		})
	}
	if called {
		t.Error("invalid input reached the engine")
	}
}

func TestPromptSendNative_ForwardsValidated(t *testing.T) {
	var gotParam rpc.AccountSendTokenParam
	srv := testNode(t, map[string]func(json.RawMessage) (interface{}, *rpc.Error){
		"account_sendToken": func(params json.RawMessage) (interface{}, *rpc.Error) {
			json.Unmarshal(params, &gotParam)
			return rpc.AccountSendResult{TxHash: "f00d"}, nil
		},
	})
	s := newTestSession(t, srv.URL)

	var addr types.Address
	addr[0] = 1
	token := types.TokenID{0xab}

	var err error
	out := captureStdout(t, func() {
		err = s.runPromptCommand("send-native", []string{addr.String(), token.String(), "10"})
	})
	if err != nil {
		t.Fatalf("send-native error: %v", err)
	}
	if gotParam.To != addr.String() || gotParam.TokenID != token.String() || gotParam.Amount != 10 {
		t.Errorf("engine saw params %+v", gotParam)
	}
	if !strings.Contains(out, "Submitted: f00d") {
		t.Errorf("output = %q", out)
	}
}

func TestPromptUnknownCommand(t *testing.T) {
	s := newTestSession(t, "http://127.0.0.1:1")
	if err := s.runPromptCommand("bogus", nil); err == nil {
		t.Error("unknown command should fail")
	}
}
