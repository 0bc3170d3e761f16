// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package led

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tangybbq/corefw"
)

func toColorful(c corefw.RGB8) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Fit finds the closest color in palette to want, for boards whose LED
// driver only supports a small fixed set of colors.
func Fit(want corefw.RGB8, palette []corefw.RGB8) corefw.RGB8 {
	if len(palette) == 0 {
		return want
	}
	target := toColorful(want)
	best := palette[0]
	bestDist := target.DistanceCIE76(toColorful(best))
	for _, c := range palette[1:] {
		d := target.DistanceCIE76(toColorful(c))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// Blend smoothly interpolates between a and b in Lab space, t in
// [0,1], for boards that can drive arbitrary colors and want a
// transition rather than a hard cut between indicator frames.
func Blend(a, b corefw.RGB8, t float64) corefw.RGB8 {
	blended := toColorful(a).BlendLab(toColorful(b), t)
	r, g, bl := blended.Clamped().RGB255()
	return corefw.RGB8{R: r, G: g, B: bl}
}
