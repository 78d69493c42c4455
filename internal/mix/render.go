package mix

import (
	"bytes"
	"fmt"
	"math"

	"github.com/linuxmatters/setmerge/internal/analysis"
	"github.com/linuxmatters/setmerge/internal/fx"
	"github.com/linuxmatters/setmerge/internal/mastering"
	"github.com/linuxmatters/setmerge/internal/pcm"
	"github.com/linuxmatters/setmerge/internal/planner"
)

// Merge orchestrates C2→C3→C4→crossfade→C5 over two decoded tracks and
// emits a mastered PCM buffer plus the WAV bytes for it, per §4.6. It
// fails hard only at input boundaries and at WAV emission (§7); every
// intermediate stage is total.
func Merge(a, b pcm.Buffer, cfg Config, progress ProgressFunc) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if a.Empty() || b.Empty() {
		return Result{}, fmt.Errorf("mix: input buffer A or B is empty")
	}

	report(progress, StageAnalyze, 0, "analyzing both tracks")
	sa, sb := analysis.AnalyzeBoth(a, b)
	report(progress, StageAnalyze, 1, "analysis complete")

	if !finitePositive(sa.BPM) || !finitePositive(sb.BPM) {
		return Result{}, fmt.Errorf("mix: analyzer produced a non-finite bpm (a=%v b=%v)", sa.BPM, sb.BPM)
	}

	report(progress, StagePlan, 0, "planning transition")
	plan := planner.Plan(sa, sb, cfg.MixMode)
	plan = planner.Apply(plan, cfg.PlanOverride)
	barsA := planner.BarsIn(sa)
	plan.StartBarA = clampInt(plan.StartBarA, 0, maxInt(barsA-1, 0))
	report(progress, StagePlan, 1, fmt.Sprintf("plan ready: %s", plan.Style))

	beatPeriodA := 60 / sa.BPM
	overlapStartSec := float64(plan.StartBarA) * 4 * beatPeriodA

	rng := fx.NewRand(cfg.NoiseSeed)
	workingA, workingB := a, b

	report(progress, StageFX, 0, "applying fx")
	for i, item := range plan.FX {
		workingA, workingB = applyPlannedFX(workingA, workingB, item, overlapStartSec, beatPeriodA, sa.BPM, sb.BPM, rng)
		report(progress, StageFX, float64(i+1)/float64(len(plan.FX)), string(item.Type))
	}
	if len(plan.FX) == 0 {
		report(progress, StageFX, 1, "no fx scheduled")
	}

	if plan.Style == planner.StyleEQMorph {
		overlapDur := float64(plan.LengthBars) * 4 * beatPeriodA
		workingA, workingB = fx.EQMorph(workingA, workingB, overlapDur)
	}

	report(progress, StageCrossfade, 0, "crossfading")
	sr := workingA.SampleRate
	overlapStart := clampInt(int(overlapStartSec*float64(sr)), 0, workingA.Frames())
	requestedCrossfadeSamples := int(cfg.CrossfadeSeconds * float64(sr))
	crossfadeSamples := minInt3(requestedCrossfadeSamples, workingA.Frames()-overlapStart, workingB.Frames())
	if crossfadeSamples < 0 {
		crossfadeSamples = 0
	}

	outChannels := maxInt(workingA.NumChannels(), workingB.NumChannels())
	outFrames := overlapStart + workingB.Frames()
	out := pcm.NewBuffer(sr, outChannels, outFrames)

	for c := 0; c < outChannels; c++ {
		outCh := out.Channel(c)
		aCh := workingA.Channel(c)
		copy(outCh[:overlapStart], aCh[:overlapStart])
	}
	writeCrossfade(out, workingA, workingB, overlapStart, overlapStart, 0, crossfadeSamples, plan.Style)
	for c := 0; c < outChannels; c++ {
		outCh := out.Channel(c)
		bCh := workingB.Channel(c)
		for i := crossfadeSamples; i < workingB.Frames(); i++ {
			dst := overlapStart + i
			if dst >= 0 && dst < outFrames {
				outCh[dst] = sampleOrZero(bCh, i)
			}
		}
	}
	report(progress, StageCrossfade, 1, "crossfade complete")

	report(progress, StageMaster, 0, "computing phase correlation")
	correlation := mastering.PhaseCorrelation(
		sliceBuffer(workingA, overlapStart, overlapStart+crossfadeSamples),
		sliceBuffer(workingB, 0, crossfadeSamples),
	)

	mastered := out
	if plan.Style == planner.StyleBassSwap || correlation < mastering.PhaseCorrelationThreshold {
		mastered = mastering.BassMono(mastered, cfg.BassMonoCutoffHz)
		report(progress, StageMaster, 0.25, "bass-mono applied")
	}
	mastered = mastering.GlueCompress(mastered, cfg.CompressorThresholdDBFS, cfg.CompressorRatio)
	report(progress, StageMaster, 0.5, "glue compression applied")
	mastered = mastering.Normalize(mastered, cfg.TargetLoudness)
	report(progress, StageMaster, 0.75, "loudness normalized")
	mastered = mastering.Limit(mastered, cfg.TruePeakCeiling)
	report(progress, StageMaster, 1, "limiting applied")

	report(progress, StageEncode, 0, "encoding wav")
	var wavBuf bytes.Buffer
	if err := pcm.EncodeWAV(&wavBuf, mastered); err != nil {
		return Result{}, fmt.Errorf("mix: encode output: %w", err)
	}
	report(progress, StageEncode, 1, "done")

	return Result{
		Output:    mastered,
		WAV:       wavBuf.Bytes(),
		Plan:      plan,
		AnalysisA: sa,
		AnalysisB: sb,
	}, nil
}

// applyPlannedFX resolves one plan.FX entry to its target buffer and
// absolute time, applying it via the fx package. sweep/reverseVerb/tapeStop
// target A at a time resolved against A's BPM; stutter targets B at time 0
// but uses B's BPM for its internal slice rhythm (§9 open question).
func applyPlannedFX(a, b pcm.Buffer, item planner.FX, overlapStartSec, beatPeriodA, bpmA, bpmB float64, rng *fx.Rand) (pcm.Buffer, pcm.Buffer) {
	if item.Type == planner.FXStutter {
		spec := fx.Spec{ID: fx.IDStutter, AtSec: 0, Params: item.Params, BPM: bpmB}
		return a, fx.Apply(b, spec, rng)
	}

	var id fx.ID
	switch item.Type {
	case planner.FXNoiseSweep:
		id = fx.IDNoiseSweep
	case planner.FXReverseVerb:
		id = fx.IDReverseVerb
	case planner.FXTapeStop:
		id = fx.IDTapeStop
	default:
		return a, b
	}

	fxTime := overlapStartSec + item.AtBeat*beatPeriodA
	if !finiteFloat(fxTime) || fxTime < 0 {
		return a, b
	}
	spec := fx.Spec{ID: id, AtSec: fxTime, Params: item.Params, BPM: bpmA}
	return fx.Apply(a, spec, rng), b
}

// sliceBuffer extracts [start,end) per channel, clamped to bounds, for
// pre-fade correlation measurement.
func sliceBuffer(buf pcm.Buffer, start, end int) pcm.Buffer {
	if start < 0 {
		start = 0
	}
	if end > buf.Frames() {
		end = buf.Frames()
	}
	if end < start {
		end = start
	}
	out := pcm.Buffer{SampleRate: buf.SampleRate, Channels: make([][]float32, len(buf.Channels))}
	for c, ch := range buf.Channels {
		out.Channels[c] = append([]float32(nil), ch[start:end]...)
	}
	return out
}

func finiteFloat(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePositive(v float64) bool {
	return finiteFloat(v) && v > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
