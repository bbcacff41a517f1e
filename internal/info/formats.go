package info

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ytget/yt-fetcher/internal/engine"
	"github.com/ytget/yt-fetcher/internal/model"
)

// Synthetic format options
const (
	BestQualityLabel    = "Best Quality"
	BestQualitySelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	BestAudioLabel      = "Best Audio"
	BestAudioSelector   = "bestaudio/best"
)

const (
	codecNone       = "none"
	unknownFormatID = "unknown"
)

type videoCandidate struct {
	height   int
	formatID string
	vbr      float64
}

type audioCandidate struct {
	label    string
	formatID string
	abr      float64
}

// NormalizeFormats turns raw stream descriptors into quality pickers.
//
// Streams carrying both video and audio are bucketed by height; the highest
// video bitrate wins a bucket and the first one seen wins a tie. Audio-only
// streams are de-duplicated by (label, id). Both lists are sorted by quality
// descending and start with a synthetic "best" entry.
func NormalizeFormats(raw []*engine.RawFormat) (video, audio []model.FormatOption) {
	var buckets []videoCandidate
	bucketIndex := make(map[int]int)

	var audios []audioCandidate
	seenAudio := make(map[[2]string]struct{})

	for _, f := range raw {
		if f == nil {
			continue
		}
		formatID := engine.StringValue(f.FormatID)
		if formatID == "" {
			formatID = unknownFormatID
		}
		hasVideo, hasAudio := hasCodec(f.VCodec), hasCodec(f.ACodec)

		switch {
		case hasVideo && hasAudio:
			c := videoCandidate{
				height:   int(engine.FloatValue(f.Height)),
				formatID: formatID,
				vbr:      engine.FloatValue(f.VBR),
			}
			if i, ok := bucketIndex[c.height]; ok {
				if c.vbr > buckets[i].vbr {
					buckets[i] = c
				}
				continue
			}
			bucketIndex[c.height] = len(buckets)
			buckets = append(buckets, c)

		case hasAudio:
			abr := engine.FloatValue(f.ABR)
			c := audioCandidate{label: kbpsLabel(abr), formatID: formatID, abr: abr}
			key := [2]string{c.label, c.formatID}
			if _, dup := seenAudio[key]; dup {
				continue
			}
			seenAudio[key] = struct{}{}
			audios = append(audios, c)
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].height > buckets[j].height })
	sort.SliceStable(audios, func(i, j int) bool { return audios[i].abr > audios[j].abr })

	video = make([]model.FormatOption, 0, len(buckets)+1)
	video = append(video, model.FormatOption{Label: BestQualityLabel, FormatSelector: BestQualitySelector})
	for _, b := range buckets {
		video = append(video, model.FormatOption{
			Label:          fmt.Sprintf("%dp (%.1fMbps)", b.height, b.vbr),
			FormatSelector: b.formatID,
		})
	}

	audio = make([]model.FormatOption, 0, len(audios)+1)
	audio = append(audio, model.FormatOption{Label: BestAudioLabel, FormatSelector: BestAudioSelector})
	for _, a := range audios {
		audio = append(audio, model.FormatOption{Label: a.label, FormatSelector: a.formatID})
	}

	return video, audio
}

// hasCodec treats a missing codec and yt-dlp's "none" the same
func hasCodec(codec *string) bool {
	v := engine.StringValue(codec)
	return v != "" && v != codecNone
}

func kbpsLabel(abr float64) string {
	return strconv.FormatFloat(abr, 'f', -1, 64) + "kbps"
}
