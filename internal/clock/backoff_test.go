package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_Next(t *testing.T) {
	tests := []struct {
		name string
		base time.Duration
		want []time.Duration
	}{
		{
			name: "doubles from base",
			base: 256 * time.Millisecond,
			want: []time.Duration{
				256 * time.Millisecond,
				512 * time.Millisecond,
				1024 * time.Millisecond,
				2048 * time.Millisecond,
			},
		},
		{
			name: "zero base yields zero delays",
			base: 0,
			want: []time.Duration{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Backoff{Base: tt.base}
			for i, want := range tt.want {
				if got := b.Next(); got != want {
					t.Fatalf("Next() call %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestSleep(t *testing.T) {
	t.Run("waits out the duration", func(t *testing.T) {
		start := time.Now()
		if err := Sleep(context.Background(), 15*time.Millisecond); err != nil {
			t.Fatalf("Sleep() unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
			t.Fatalf("Sleep() returned after %v, want at least 15ms", elapsed)
		}
	})

	t.Run("returns early on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(5*time.Millisecond, cancel)

		start := time.Now()
		err := Sleep(ctx, 500*time.Millisecond)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Sleep() error = %v, want context.Canceled", err)
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("Sleep() took %v after cancel, want well under the full duration", elapsed)
		}
	})
}
