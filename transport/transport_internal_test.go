package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "zero means no limit", timeout: 0, want: 0},
		{name: "negative means no limit", timeout: -time.Second, want: 0},
		{name: "configured value passes through", timeout: 30 * time.Second, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Config{Timeout: tt.timeout}, nil, nil)

			assert.Equal(t, tt.want, r.http.client.Timeout)
			assert.Equal(t, tt.want, r.stowry.client.Timeout)
		})
	}
}
