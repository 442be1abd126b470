// Package color parses CSS-style color strings to RGBA and linearly
// interpolates numbers and colors between two endpoints at factor
// t∈[0,1]. It is intentionally small: a pragmatic subset of CSS color
// syntax (#hex, rgb()/rgba(), a handful of named colors) rather than a
// full CSS Color Module 4 parser.
package color

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is a color value with components in [0,1] (e.g.
// ["rgba", 255, 0, 0, 1] -> [1,0,0,1]).
type RGBA [4]float64

var named = map[string]RGBA{
	"black":       {0, 0, 0, 1},
	"white":       {1, 1, 1, 1},
	"red":         {1, 0, 0, 1},
	"green":       {0, 0.5019607843137255, 0, 1},
	"blue":        {0, 0, 1, 1},
	"yellow":      {1, 1, 0, 1},
	"cyan":        {0, 1, 1, 1},
	"magenta":     {1, 0, 1, 1},
	"gray":        {0.5019607843137255, 0.5019607843137255, 0.5019607843137255, 1},
	"grey":        {0.5019607843137255, 0.5019607843137255, 0.5019607843137255, 1},
	"orange":      {1, 0.6470588235294118, 0, 1},
	"purple":      {0.5019607843137255, 0, 0.5019607843137255, 1},
	"transparent": {0, 0, 0, 0},
}

// Parse parses a CSS-style color string into RGBA, or returns an error if
// the string is not recognized.
func Parse(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if c, ok := named[lower]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb(") {
		return parseFunctional(s)
	}
	return RGBA{}, fmt.Errorf("could not parse color from value '%s'", s)
}

func parseHex(s string) (RGBA, error) {
	h := s[1:]
	expand := func(c byte) (float64, error) {
		v, err := strconv.ParseUint(string([]byte{c, c}), 16, 8)
		if err != nil {
			return 0, err
		}
		return float64(v) / 255, nil
	}
	byte2 := func(c1, c2 byte) (float64, error) {
		v, err := strconv.ParseUint(string([]byte{c1, c2}), 16, 8)
		if err != nil {
			return 0, err
		}
		return float64(v) / 255, nil
	}

	switch len(h) {
	case 3, 4:
		r, err := expand(h[0])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		g, err := expand(h[1])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		b, err := expand(h[2])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		a := 1.0
		if len(h) == 4 {
			a, err = expand(h[3])
			if err != nil {
				return RGBA{}, badHex(s)
			}
		}
		return RGBA{r, g, b, a}, nil
	case 6, 8:
		r, err := byte2(h[0], h[1])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		g, err := byte2(h[2], h[3])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		b, err := byte2(h[4], h[5])
		if err != nil {
			return RGBA{}, badHex(s)
		}
		a := 1.0
		if len(h) == 8 {
			a, err = byte2(h[6], h[7])
			if err != nil {
				return RGBA{}, badHex(s)
			}
		}
		return RGBA{r, g, b, a}, nil
	default:
		return RGBA{}, badHex(s)
	}
}

func badHex(s string) error {
	return fmt.Errorf("could not parse color from value '%s'", s)
}

func parseFunctional(s string) (RGBA, error) {
	open := strings.IndexByte(s, '(')
	closeIdx := strings.LastIndexByte(s, ')')
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return RGBA{}, fmt.Errorf("could not parse color from value '%s'", s)
	}
	inner := s[open+1 : closeIdx]
	parts := strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("could not parse color from value '%s'", s)
	}
	comp := func(p string) (float64, error) {
		isPct := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, err
		}
		if isPct {
			return v / 100, nil
		}
		return v / 255, nil
	}
	r, err := comp(parts[0])
	if err != nil {
		return RGBA{}, badHex(s)
	}
	g, err := comp(parts[1])
	if err != nil {
		return RGBA{}, badHex(s)
	}
	b, err := comp(parts[2])
	if err != nil {
		return RGBA{}, badHex(s)
	}
	a := 1.0
	if len(parts) == 4 {
		a, err = strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
		if err != nil {
			return RGBA{}, badHex(s)
		}
	}
	return RGBA{r, g, b, a}, nil
}

// InterpolateNumber linearly interpolates a and b at factor t.
func InterpolateNumber(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate linearly interpolates two colors componentwise in RGBA space.
func Interpolate(a, b RGBA, t float64) RGBA {
	return RGBA{
		InterpolateNumber(a[0], b[0], t),
		InterpolateNumber(a[1], b[1], t),
		InterpolateNumber(a[2], b[2], t),
		InterpolateNumber(a[3], b[3], t),
	}
}
