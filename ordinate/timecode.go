// SPDX-License-Identifier: Apache-2.0

package ordinate

import (
	"fmt"
	"regexp"
	"strconv"
)

// DropFrame selects how ToTimecode decides whether to emit drop-frame
// timecode, mirroring gotio's opentime.IsDropFrameRate trio.
type DropFrame int

const (
	// DropFrameInfer picks drop-frame automatically for 29.97/59.94 rates.
	DropFrameInfer DropFrame = iota
	// DropFrameNever forces non-drop-frame timecode.
	DropFrameNever
	// DropFrameAlways forces drop-frame timecode.
	DropFrameAlways
)

func isDropFrameRate(rate int64) bool {
	return rate == 2997 || rate == 5994
}

// ToTimecode renders a seconds-valued ordinate as "HH:MM:SS:FF" (or
// "HH:MM:SS;FF" for drop-frame) at the given integer frame rate. This
// is a lossy, presentation-only view: the result is never re-entered
// into arithmetic (see Design Note "Exact rationals by default").
// rateX100 carries the rate scaled by 100 so that 29.97 is passed as
// 2997, avoiding a float parameter on an otherwise exact API.
func ToTimecode(secondsValue Ordinate, rateX100 int64, df DropFrame) (string, error) {
	if !secondsValue.IsFinite() {
		return "", fmt.Errorf("ordinate: cannot render non-finite time as timecode")
	}
	if rateX100 <= 0 {
		return "", fmt.Errorf("ordinate: invalid rate")
	}

	rate := FromFrac(rateX100, 100)
	totalFramesOrd := secondsValue.Mul(rate)
	totalFrames, err := totalFramesOrd.Floor()
	if err != nil {
		return "", err
	}
	if totalFrames < 0 {
		return "", fmt.Errorf("ordinate: negative timecode not supported")
	}

	useDrop := df == DropFrameAlways || (df == DropFrameInfer && isDropFrameRate(rateX100))
	nominalRate := (rateX100 + 50) / 100 // round to nearest integer rate

	if useDrop {
		var dropFrames int64 = 2
		if nominalRate >= 60 {
			dropFrames = 4
		}
		framesPerMinute := nominalRate*60 - dropFrames
		framesPer10Minutes := framesPerMinute*10 + dropFrames

		d := totalFrames / framesPer10Minutes
		m := totalFrames % framesPer10Minutes
		if m < dropFrames {
			m += dropFrames
		}
		frameCount := d*framesPer10Minutes + (m-dropFrames)/framesPerMinute*(framesPerMinute+dropFrames) +
			(m-dropFrames)%framesPerMinute + dropFrames

		frames := frameCount % nominalRate
		seconds := (frameCount / nominalRate) % 60
		minutes := (frameCount / nominalRate / 60) % 60
		hours := frameCount / nominalRate / 3600
		return fmt.Sprintf("%02d:%02d:%02d;%02d", hours, minutes, seconds, frames), nil
	}

	frames := totalFrames % nominalRate
	seconds := (totalFrames / nominalRate) % 60
	minutes := (totalFrames / nominalRate / 60) % 60
	hours := totalFrames / nominalRate / 3600
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames), nil
}

var timecodeRegex = regexp.MustCompile(`^(-?)(\d{1,2}):(\d{2}):(\d{2})([;:])?(\d{2,})$`)

// FromTimecode parses "HH:MM:SS:FF" or "HH:MM:SS;FF" at the given
// integer*100 frame rate into a seconds-valued ordinate.
func FromTimecode(tc string, rateX100 int64) (Ordinate, error) {
	m := timecodeRegex.FindStringSubmatch(tc)
	if m == nil {
		return Zero, fmt.Errorf("ordinate: invalid timecode %q", tc)
	}
	negative := m[1] == "-"
	hours, _ := strconv.ParseInt(m[2], 10, 64)
	minutes, _ := strconv.ParseInt(m[3], 10, 64)
	seconds, _ := strconv.ParseInt(m[4], 10, 64)
	frames, _ := strconv.ParseInt(m[6], 10, 64)
	useDrop := m[5] == ";"

	nominalRate := (rateX100 + 50) / 100

	var totalFrames int64
	if useDrop {
		dropFrames := int64(2)
		if nominalRate >= 60 {
			dropFrames = 4
		}
		framesPerMinute := nominalRate*60 - dropFrames
		framesPer10Minutes := framesPerMinute*10 + dropFrames
		totalMinutes := hours*60 + minutes
		totalFrames = framesPer10Minutes*(totalMinutes/10) +
			framesPerMinute*(totalMinutes%10) +
			seconds*nominalRate + frames -
			dropFrames*(totalMinutes-totalMinutes/10)
	} else {
		totalFrames = hours*3600*nominalRate + minutes*60*nominalRate + seconds*nominalRate + frames
	}
	if negative {
		totalFrames = -totalFrames
	}

	rate := FromFrac(rateX100, 100)
	return FromInt64(totalFrames).Div(rate), nil
}
