package media

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Info is the embedded metadata of one media file.
type Info struct {
	General *General `json:"general,omitempty"`
	Video   []Video  `json:"video,omitempty"`
	Audio   []Audio  `json:"audio,omitempty"`
	Text    []Text   `json:"text,omitempty"`
	Menu    []Menu   `json:"menu,omitempty"`
	// Report is the full MediaInfo text report, when the collaborator has one.
	Report string `json:"report,omitempty"`
}

// General is the container-level track.
type General struct {
	CompleteName          string   `json:"complete_name,omitempty"`
	FileSize              int64    `json:"file_size,omitempty"`
	FileSizeDisplay       string   `json:"file_size_display,omitempty"`
	DurationMS            float64  `json:"duration_ms,omitempty"`
	DurationDisplay       []string `json:"duration_display,omitempty"`
	OverallBitRate        int64    `json:"overall_bit_rate,omitempty"`
	OverallBitRateDisplay string   `json:"overall_bit_rate_display,omitempty"`
	OverallBitRateMode    string   `json:"overall_bit_rate_mode,omitempty"`
	FrameRate             string   `json:"frame_rate,omitempty"`
}

// Video is one video track.
type Video struct {
	ID                      string   `json:"id,omitempty"`
	Format                  string   `json:"format,omitempty"`
	FormatVersion           string   `json:"format_version,omitempty"`
	FormatProfile           string   `json:"format_profile,omitempty"`
	HDRFormat               string   `json:"hdr_format,omitempty"`
	TransferCharacteristics string   `json:"transfer_characteristics,omitempty"`
	Width                   int      `json:"width,omitempty"`
	Height                  int      `json:"height,omitempty"`
	DisplayAspectRatio      string   `json:"display_aspect_ratio,omitempty"`
	FrameRate               string   `json:"frame_rate,omitempty"`
	ScanType                string   `json:"scan_type,omitempty"`
	BitDepth                int      `json:"bit_depth,omitempty"`
	MultiviewCount          int      `json:"multiview_count,omitempty"`
	StreamSize              int64    `json:"stream_size,omitempty"`
	DurationMS              float64  `json:"duration_ms,omitempty"`
	BitRate                 int64    `json:"bit_rate,omitempty"`
	BitRateDisplay          string   `json:"bit_rate_display,omitempty"`
	ColorSpace              string   `json:"color_space,omitempty"`
	ChromaSubsampling       string   `json:"chroma_subsampling,omitempty"`
	Language                string   `json:"language,omitempty"`
	OtherLanguage           []string `json:"other_language,omitempty"`
}

// Audio is one audio track. Channels mirrors MediaInfo's "Channel(s)" field,
// which can hold several counts ("8 / 6") for lossless-core streams.
type Audio struct {
	ID                    string   `json:"id,omitempty"`
	Format                string   `json:"format,omitempty"`
	FormatDisplay         string   `json:"format_display,omitempty"`
	CommercialName        string   `json:"commercial_name,omitempty"`
	CodecID               string   `json:"codec_id,omitempty"`
	Channels              string   `json:"channels,omitempty"`
	ChannelsDisplay       string   `json:"channels_display,omitempty"`
	ChannelsOriginal      string   `json:"channels_original,omitempty"`
	ChannelPositions      string   `json:"channel_positions,omitempty"`
	ChannelLayout         string   `json:"channel_layout,omitempty"`
	ChannelLayoutOriginal string   `json:"channel_layout_original,omitempty"`
	BitRate               int64    `json:"bit_rate,omitempty"`
	BitRateDisplay        string   `json:"bit_rate_display,omitempty"`
	SamplingRate          int      `json:"sampling_rate,omitempty"`
	SamplingRateDisplay   string   `json:"sampling_rate_display,omitempty"`
	CompressionMode       string   `json:"compression_mode,omitempty"`
	BitDepth              int      `json:"bit_depth,omitempty"`
	StreamSize            int64    `json:"stream_size,omitempty"`
	DurationMS            float64  `json:"duration_ms,omitempty"`
	Title                 string   `json:"title,omitempty"`
	Language              string   `json:"language,omitempty"`
	OtherLanguage         []string `json:"other_language,omitempty"`
}

// Text is one subtitle track. Forced holds MediaInfo's "Yes"/"No" flag.
type Text struct {
	ID            string   `json:"id,omitempty"`
	Format        string   `json:"format,omitempty"`
	Title         string   `json:"title,omitempty"`
	Forced        string   `json:"forced,omitempty"`
	Language      string   `json:"language,omitempty"`
	OtherLanguage []string `json:"other_language,omitempty"`
}

// Menu is a chapter menu track.
type Menu struct {
	Chapters []Chapter `json:"chapters,omitempty"`
}

// Chapter is one chapter marker. Name may carry a language prefix ("en:Intro").
type Chapter struct {
	Start string `json:"start"`
	Name  string `json:"name"`
}

// FirstVideo returns the first video track.
func (i *Info) FirstVideo() (Video, bool) {
	if i == nil || len(i.Video) == 0 {
		return Video{}, false
	}
	return i.Video[0], true
}

// FirstAudio returns the first audio track.
func (i *Info) FirstAudio() (Audio, bool) {
	if i == nil || len(i.Audio) == 0 {
		return Audio{}, false
	}
	return i.Audio[0], true
}

// GeneralTrack returns the general track or a zero value.
func (i *Info) GeneralTrack() General {
	if i == nil || i.General == nil {
		return General{}
	}
	return *i.General
}

// Load reads an Info document from a JSON file.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read media info %s: %w", path, err)
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse media info %s: %w", path, err)
	}
	return &info, nil
}
