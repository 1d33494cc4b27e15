// Package resolution classifies arbitrary pixel dimensions into commercial
// resolution tiers such as 720p, 1080p and 2160p.
//
// Cropped encodes (letterboxed scope films, pillarboxed 4:3 content) and
// portrait video are handled by trying several hypotheses per tier and keeping
// the lowest normalized error.
package resolution

import (
	"fmt"
	"math"
	"strconv"

	"nfoforge/internal/media"
)

// Result is the outcome of classifying one set of dimensions.
type Result struct {
	Width      int
	Height     int
	BaseLabel  string // tier without scan suffix, e.g. "1080"
	BaseHeight int
	Confidence float64 // 0.0 to 1.0
	Notes      string
	ObservedAR float64
	BaseAR     float64
	NormError  float64
}

type base struct {
	label  string
	height int
	width  int
}

// 16:9 and 4:3 canonical widths for every tier.
var bases = []base{
	{"480", 480, 854},
	{"480", 480, 640},
	{"576", 576, 1024},
	{"576", 576, 768},
	{"720", 720, 1280},
	{"720", 720, 960},
	{"1080", 1080, 1920},
	{"1080", 1080, 1440},
	{"1440", 1440, 2560},
	{"1440", 1440, 1920},
	{"2160", 2160, 3840},
	{"2160", 2160, 2880},
	{"4320", 4320, 7680},
	{"4320", 4320, 5760},
	{"8640", 8640, 15360},
	{"8640", 8640, 11520},
}

const (
	absTolerance = 8
	relTolerance = 0.03
	minCropFrac  = 0.55
)

// LowConfidence is the threshold below which a match is worth a warning.
const LowConfidence = 0.6

// Infer classifies width x height, trying the swapped orientation as well and
// returning whichever matches with higher confidence.
func Infer(width, height int) Result {
	landscape := inferOne(width, height)
	portrait := inferOne(height, width)
	if landscape.Confidence >= portrait.Confidence {
		return landscape
	}
	return portrait
}

func inferOne(w, h int) Result {
	if h == 0 {
		return Result{
			Width:      w,
			Height:     h,
			BaseLabel:  "480",
			BaseHeight: 480,
			Notes:      "Invalid dimensions (height=0)",
		}
	}

	var best *Result
	bestErr := math.Inf(1)
	obsAR := float64(w) / float64(h)

	for _, b := range bases {
		bw, bh := float64(b.width), float64(b.height)
		fw, fh := float64(w), float64(h)
		baseAR := bw / bh

		dw := math.Abs(fw-bw) / bw
		dh := math.Abs(fh-bh) / bh
		arErr := math.Abs(obsAR-baseAR) / baseAR

		hypotheses := []float64{(dw+dh)/2 + 0.25*arErr}
		// Letterboxed: full width, reduced height.
		if fw >= minCropFrac*bw && fh <= bh+tolerance(bh) {
			deficit := math.Max(0, (bh-fh)/bh)
			hypotheses = append(hypotheses, dw+0.5*deficit+0.25*arErr)
		}
		// Pillarboxed: full height, reduced width.
		if fh >= minCropFrac*bh && fw <= bw+tolerance(bw) {
			deficit := math.Max(0, (bw-fw)/bw)
			hypotheses = append(hypotheses, dh+0.5*deficit+0.25*arErr)
		}

		for _, err := range hypotheses {
			if err >= bestErr {
				continue
			}
			bestErr = err
			best = &Result{
				Width:      w,
				Height:     h,
				BaseLabel:  b.label,
				BaseHeight: b.height,
				Confidence: errToConfidence(err),
				Notes:      fmt.Sprintf("Matched to %sp (base %dx%d)", b.label, b.width, b.height),
				ObservedAR: round(obsAR, 5),
				BaseAR:     round(baseAR, 5),
				NormError:  round(err, 5),
			}
			if err < 0.01 {
				return *best
			}
		}
	}

	if best == nil {
		nearest := bases[0]
		for _, b := range bases[1:] {
			if absInt(h-b.height) < absInt(h-nearest.height) {
				nearest = b
			}
		}
		return Result{
			Width:      w,
			Height:     h,
			BaseLabel:  nearest.label,
			BaseHeight: nearest.height,
			Confidence: 0.3,
			Notes:      "Fallback by nearest base height",
			ObservedAR: round(obsAR, 5),
			BaseAR:     round(float64(nearest.width)/float64(nearest.height), 5),
		}
	}
	return *best
}

// Detect returns the commercial resolution of the first video track, e.g.
// "1080p" or "576i". With removeScan only the tier number is returned. An
// empty string means there is no usable video track.
func Detect(info *media.Info, removeScan bool) string {
	if info == nil {
		return ""
	}
	track, ok := info.FirstVideo()
	if !ok || track.Width == 0 || track.Height == 0 {
		return ""
	}
	result := Infer(track.Width, track.Height)
	if removeScan {
		return result.BaseLabel
	}
	return result.BaseLabel + ScanSuffix(track)
}

// DetectHeight is Detect with removeScan set, parsed as an integer. Zero means
// unknown.
func DetectHeight(info *media.Info) int {
	n, err := strconv.Atoi(Detect(info, true))
	if err != nil {
		return 0
	}
	return n
}

// ScanSuffix returns "p" for progressive or unknown scan types, and for
// 25fps material which is almost always PAL progressive; otherwise "i".
func ScanSuffix(track media.Video) string {
	scan := track.ScanType
	if scan == "" || scan == "Progressive" || track.FrameRate == "25.000" {
		return "p"
	}
	return "i"
}

func tolerance(b float64) float64 {
	return math.Max(absTolerance, relTolerance*b)
}

func errToConfidence(err float64) float64 {
	err = math.Max(0, err)
	conf := 1.0 / (1.0 + 10.0*err)
	return round(math.Max(0, math.Min(1, conf)), 3)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
