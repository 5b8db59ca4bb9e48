package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/testutil"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      config.AppConfig
		contains []string
	}{
		{
			name:     "SingleEvaluation",
			cfg:      config.AppConfig{Op: "mul", Operands: []string{"x - 1", "x + 1"}, Timeout: time.Minute},
			contains: []string{"Operation: mul on x - 1 ; x + 1.", "Pow strategy: binary", "max degree: unlimited", "1m0s"},
		},
		{
			name:     "Batch",
			cfg:      config.AppConfig{BatchFile: "jobs.txt", Workers: 4, PowStrategy: "linear", MaxDegree: 64, Timeout: time.Second},
			contains: []string{"Batch file: jobs.txt, 4 worker(s).", "Pow strategy: linear", "max degree: 64"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			PrintExecutionConfig(tt.cfg, &out)
			testutil.AssertContains(t, out.String(), tt.contains...)
		})
	}
}
