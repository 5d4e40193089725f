package redis

import (
	"context"
	"testing"
	"time"
)

func TestConnect_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{Addr: "127.0.0.1:1", PingTimeout: 200 * time.Millisecond})
	if err == nil {
		_ = client.Close()
		t.Fatalf("expected connection error for unreachable server")
	}
}
