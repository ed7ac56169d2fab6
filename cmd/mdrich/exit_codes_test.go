package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/config"
	"github.com/alnah/go-mdrich/internal/pipeline"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"check failed", fmt.Errorf("%w: 2 file(s)", ErrCheckFailed), ExitCheck},
		{"not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},
		{"read input", fmt.Errorf("%w: denied", ErrReadInput), ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"usage", fmt.Errorf("%w: unknown flag", ErrUsage), ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"unknown rule", &unknownRuleError{group: groupElements, err: mdrich.ErrUnknownTransformer}, ExitUsage},
		{"missing dependency", mdrich.ErrMissingDependency, ExitUsage},
		{"format failed", ErrFormatFailed, ExitGeneral},
		{"html conversion", pipeline.ErrHTMLConversion, ExitGeneral},
		{"unexpected", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
