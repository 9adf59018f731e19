package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisRelay_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "Malformed url", url: "://nope"},
		{name: "Unreachable server", url: "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			relay, err := NewRedisRelay(ctx, tt.url, NewHub())
			assert.Error(t, err)
			assert.Nil(t, relay)
		})
	}
}
