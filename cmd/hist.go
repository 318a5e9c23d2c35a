package cmd

import (
	"fmt"
	"math"
	"strings"
)

// asciiHist draws a crude vertical bar chart of the sample histogram:
// bins columns spanning the sample range, height text rows.
func asciiHist(samples []float64, bins, height int) string {
	if len(samples) == 0 || bins <= 0 || height <= 0 {
		return "no data to plot\n"
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	counts := make([]float64, bins)
	for _, v := range samples {
		b := int(float64(bins) * (v - lo) / (hi - lo))
		if b == bins {
			b--
		}
		counts[b]++
	}
	peak := 0.0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}

	var sb strings.Builder
	// for each row from top (height) down to 1
	for row := height; row >= 1; row-- {
		threshold := float64(row) / float64(height)
		for _, c := range counts {
			if c/peak >= threshold {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("─", bins))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-*.3f%*.3f\n", bins/2, lo, bins-bins/2, hi))
	return sb.String()
}
