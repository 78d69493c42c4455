// Package mix orchestrates the full pipeline: analyze both tracks, plan
// the transition, apply FX, crossfade, and master, producing a MergedResult
// per §4.6. It is the one package callers outside this module invoke.
package mix

import (
	"fmt"
	"math"

	"github.com/linuxmatters/setmerge/internal/mastering"
	"github.com/linuxmatters/setmerge/internal/planner"
)

// ExportFormat names an output container/codec. Only WAVPCM16 is
// implemented; the others are named per §6's config enumeration and
// rejected by Config.Validate, since decode/encode of compressed formats is
// out of scope.
type ExportFormat string

const (
	ExportWAVPCM16    ExportFormat = "wav_16bit_44.1k"
	ExportWAV24_48    ExportFormat = "wav_24bit_48k"
	ExportMP3_320     ExportFormat = "mp3_320"
	ExportFLAC        ExportFormat = "flac"
)

// Config collects every tunable the renderer needs, mirroring the
// teacher's FilterChainConfig struct-of-tunables plus a constructor that
// fills in the documented defaults.
type Config struct {
	MixMode          planner.Mode
	CrossfadeSeconds float64
	TargetLoudness   float64
	TruePeakCeiling  float64
	CompressorThresholdDBFS float64
	CompressorRatio  float64
	BassMonoCutoffHz float64
	ExportFormat     ExportFormat
	NoiseSeed        uint32
	PlanOverride     *planner.Override
}

// DefaultConfig returns the documented defaults: neutral mode, -14 LUFS
// target, -1.0 dBTP ceiling, PCM16/44.1k export.
func DefaultConfig() Config {
	return Config{
		MixMode:                 planner.ModeNeutral,
		CrossfadeSeconds:        4.0,
		TargetLoudness:          mastering.DefaultTargetLUFS,
		TruePeakCeiling:         mastering.DefaultTruePeakCeilingDBTP,
		CompressorThresholdDBFS: mastering.DefaultCompressorThresholdDBFS,
		CompressorRatio:         mastering.DefaultCompressorRatio,
		BassMonoCutoffHz:        mastering.DefaultBassMonoCutoffHz,
		ExportFormat:            ExportWAVPCM16,
		NoiseSeed:               1,
	}
}

// Validate rejects unsupported export formats, non-finite tunables and a
// negative crossfade up front; Merge calls it before any other work.
func (c Config) Validate() error {
	if c.ExportFormat != ExportWAVPCM16 {
		return fmt.Errorf("mix: export format %q is out of scope, only %q is implemented", c.ExportFormat, ExportWAVPCM16)
	}
	for _, t := range []struct {
		name string
		v    float64
	}{
		{"crossfade_seconds", c.CrossfadeSeconds},
		{"target_loudness", c.TargetLoudness},
		{"true_peak_ceiling", c.TruePeakCeiling},
		{"compressor_threshold_dbfs", c.CompressorThresholdDBFS},
		{"compressor_ratio", c.CompressorRatio},
		{"bass_mono_cutoff_hz", c.BassMonoCutoffHz},
	} {
		if math.IsNaN(t.v) || math.IsInf(t.v, 0) {
			return fmt.Errorf("mix: %s must be finite, got %v", t.name, t.v)
		}
	}
	if c.CrossfadeSeconds < 0 {
		return fmt.Errorf("mix: crossfade_seconds must be non-negative, got %v", c.CrossfadeSeconds)
	}
	return nil
}
