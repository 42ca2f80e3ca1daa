package video

import (
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"github.com/wbrown/vid2ascii"
)

// ProbeResult is what the pipeline needs to know about a container
// before conversion starts: the display rotation of its video stream
// and whether it carries an audio track to pass through.
type ProbeResult struct {
	// Rotation is the clockwise angle, in degrees, the decoded frames
	// must be rotated by to display upright. Always one of 0, 90, 180,
	// or 270.
	Rotation int

	// HasAudio reports whether the container has at least one audio
	// stream.
	HasAudio bool
}

// Probe reads a container's stream metadata with ffprobe. The result
// is read once per input and applied to every frame.
func Probe(path string) (ProbeResult, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		path).Output()
	if err != nil {
		return ProbeResult{}, fmt.Errorf("%w: probing %s: %v",
			vid2ascii.ErrUnsupportedInput, path, err)
	}
	res, err := parseProbe(out)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ffprobe -show_streams JSON shape, reduced to the fields consumed
// here. Rotation appears in two places depending on the muxer: a
// legacy "rotate" stream tag (clockwise degrees) or a Display Matrix
// side data entry (counter-clockwise degrees).
type probeOutput struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	Tags      struct {
		Rotate string `json:"rotate"`
	} `json:"tags"`
	SideDataList []struct {
		SideDataType string      `json:"side_data_type"`
		Rotation     json.Number `json:"rotation"`
	} `json:"side_data_list"`
}

func parseProbe(data []byte) (ProbeResult, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ProbeResult{}, fmt.Errorf("%w: unreadable ffprobe output: %v",
			vid2ascii.ErrUnsupportedInput, err)
	}

	var res ProbeResult
	var video *probeStream
	for i := range out.Streams {
		switch out.Streams[i].CodecType {
		case "video":
			if video == nil {
				video = &out.Streams[i]
			}
		case "audio":
			res.HasAudio = true
		}
	}
	if video == nil {
		return ProbeResult{}, fmt.Errorf("%w: no video stream",
			vid2ascii.ErrUnsupportedInput)
	}

	deg, err := streamRotation(video)
	if err != nil {
		return ProbeResult{}, err
	}
	res.Rotation = deg
	return res, nil
}

// streamRotation extracts the clockwise display rotation of a video
// stream, reconciling the tag and side data forms. If both are present
// they must agree, otherwise the metadata is ambiguous.
func streamRotation(s *probeStream) (int, error) {
	tagDeg, haveTag := 0, false
	if s.Tags.Rotate != "" {
		d, err := strconv.Atoi(s.Tags.Rotate)
		if err != nil {
			return 0, fmt.Errorf("%w: rotate tag %q", vid2ascii.ErrUnsupportedInput,
				s.Tags.Rotate)
		}
		tagDeg, haveTag = normalizeDegrees(d), true
	}

	sideDeg, haveSide := 0, false
	for _, sd := range s.SideDataList {
		if sd.SideDataType != "Display Matrix" || sd.Rotation == "" {
			continue
		}
		f, err := sd.Rotation.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: display matrix rotation %q",
				vid2ascii.ErrUnsupportedInput, sd.Rotation)
		}
		// Display matrix angles are counter-clockwise.
		sideDeg, haveSide = normalizeDegrees(-int(f)), true
		break
	}

	switch {
	case haveTag && haveSide && tagDeg != sideDeg:
		return 0, fmt.Errorf("%w: ambiguous rotation metadata (%d vs %d)",
			vid2ascii.ErrUnsupportedInput, tagDeg, sideDeg)
	case haveTag:
		return tagDeg, nil
	case haveSide:
		return sideDeg, nil
	}
	return 0, nil
}

func normalizeDegrees(deg int) int {
	return ((deg % 360) + 360) % 360
}

// MuxAudio combines the video stream of converted with the first audio
// stream of source into output. The video stream is copied untouched;
// audio is re-encoded to AAC so any source codec fits the output
// container.
func MuxAudio(converted, source, output string) error {
	out, err := exec.Command("ffmpeg",
		"-y", "-v", "error",
		"-i", converted,
		"-i", source,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		output).CombinedOutput()
	if err != nil {
		return fmt.Errorf("muxing audio into %s: %v: %s", output, err, out)
	}
	return nil
}
