package mastering

import "github.com/linuxmatters/setmerge/internal/pcm"

// PhaseCorrelationThreshold triggers bass-mono when correlation drops below
// this value (§4.6 step 8).
const PhaseCorrelationThreshold = -0.3

// PhaseCorrelation computes mean(mid*side) over the overlap between two
// stereo (or stereo-broadcast) buffers, where mid = ¼(La+Ra+Lb+Rb) and
// side = ¼(La-Ra+Lb-Rb). Used only as a bass-mono trigger, never as output.
func PhaseCorrelation(a, b pcm.Buffer) float64 {
	n := a.Frames()
	if b.Frames() < n {
		n = b.Frames()
	}
	if n == 0 {
		return 0
	}
	la, ra := a.Channel(0), a.Channel(1)
	lb, rb := b.Channel(0), b.Channel(1)

	var sum float64
	for i := 0; i < n; i++ {
		mid := 0.25 * float64(la[i]+ra[i]+lb[i]+rb[i])
		side := 0.25 * float64(la[i]-ra[i]+lb[i]-rb[i])
		sum += mid * side
	}
	return sum / float64(n)
}
