package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
		{"small bucket size", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "batch") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset() // should not panic
}

func TestProgressSampler_PhaseChange(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(0, "batch") {
		t.Error("first phase should log")
	}
	if s.ShouldLog(0, "batch") {
		t.Error("same phase and percent should not log again")
	}
	if !s.ShouldLog(0, "rerank") {
		t.Error("different phase should log")
	}
	if s.lastPhase != "rerank" {
		t.Errorf("lastPhase = %q, want rerank", s.lastPhase)
	}
}

func TestProgressSampler_PhaseTrimsWhitespace(t *testing.T) {
	s := NewProgressSampler(5)

	s.ShouldLog(0, "  batch  ")
	if s.lastPhase != "batch" {
		t.Errorf("lastPhase = %q, want batch (trimmed)", s.lastPhase)
	}
}

func TestProgressSampler_PercentBuckets(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(0, "batch") {
		t.Error("0% should log")
	}
	if s.ShouldLog(3, "batch") {
		t.Error("3% is still in the first bucket")
	}
	if !s.ShouldLog(5, "batch") {
		t.Error("5% crosses into a new bucket")
	}
	if s.ShouldLog(9, "batch") {
		t.Error("9% stays in the 5-10 bucket")
	}
	if !s.ShouldLog(23, "batch") {
		t.Error("skipping ahead should log")
	}
	if !s.ShouldLog(100, "batch") {
		t.Error("completion should log")
	}
	if s.ShouldLog(100, "batch") {
		t.Error("repeated completion should not log")
	}
}

func TestProgressSampler_NegativePercentUnknown(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(-1, "batch") {
		t.Error("phase change should log even with unknown percent")
	}
	if s.ShouldLog(-1, "batch") {
		t.Error("unknown percent in the same phase should not log")
	}
}

func TestProgressSampler_Reset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(50, "batch")
	s.Reset()

	if !s.ShouldLog(50, "batch") {
		t.Error("after Reset the same progress should log again")
	}
}
