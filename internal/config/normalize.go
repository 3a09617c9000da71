package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeCaption()
	c.normalizeSticker()
	c.normalizeEncode()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	if c.Video.Width <= 0 {
		c.Video.Width = defaultWidth
	}
	if c.Video.Height <= 0 {
		c.Video.Height = defaultHeight
	}
	if c.Video.FPS <= 0 {
		c.Video.FPS = defaultFPS
	}
	if c.Video.CrossfadeSeconds < 0 {
		c.Video.CrossfadeSeconds = 0
	}
	if c.Video.JPEGQuality <= 0 {
		c.Video.JPEGQuality = defaultJPEGQuality
	}
}

func (c *Config) normalizeCaption() {
	if c.Caption.FontSize <= 0 {
		c.Caption.FontSize = defaultFontSize
	}
	if c.Caption.LineHeight <= 0 {
		c.Caption.LineHeight = defaultLineHeight
	}
	if c.Caption.BottomMargin < 0 {
		c.Caption.BottomMargin = defaultBottomMargin
	}
	if c.Caption.HorizontalInset < 0 {
		c.Caption.HorizontalInset = defaultHorizontalInset
	}
	if c.Caption.OutlineRadius < 0 {
		c.Caption.OutlineRadius = defaultOutlineRadius
	}
	paths := make([]string, 0, len(c.Caption.FontPaths))
	for _, fontPath := range c.Caption.FontPaths {
		trimmed := strings.TrimSpace(fontPath)
		if trimmed == "" {
			continue
		}
		if expanded, err := expandPath(trimmed); err == nil {
			trimmed = expanded
		}
		paths = append(paths, trimmed)
	}
	if len(paths) == 0 {
		paths = defaultFontPaths()
	}
	c.Caption.FontPaths = paths
}

func (c *Config) normalizeSticker() {
	if c.Sticker.HeightRatio <= 0 {
		c.Sticker.HeightRatio = defaultStickerRatio
	}
	if c.Sticker.Margin < 0 {
		c.Sticker.Margin = defaultStickerMargin
	}
}

func (c *Config) normalizeEncode() {
	if strings.TrimSpace(c.Encode.VideoCodec) == "" {
		c.Encode.VideoCodec = defaultVideoCodec
	}
	if strings.TrimSpace(c.Encode.Preset) == "" {
		c.Encode.Preset = defaultPreset
	}
	if c.Encode.CRF <= 0 {
		c.Encode.CRF = defaultCRF
	}
	if strings.TrimSpace(c.Encode.AudioCodec) == "" {
		c.Encode.AudioCodec = defaultAudioCodec
	}
	if strings.TrimSpace(c.Encode.AudioBitrate) == "" {
		c.Encode.AudioBitrate = defaultAudioBitrate
	}
	if strings.TrimSpace(c.Encode.PixelFormat) == "" {
		c.Encode.PixelFormat = defaultPixelFormat
	}
	c.Encode.FFmpegBinary = strings.TrimSpace(c.Encode.FFmpegBinary)
	c.Encode.FFprobeBinary = strings.TrimSpace(c.Encode.FFprobeBinary)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
