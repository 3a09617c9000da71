package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateCaption(); err != nil {
		return err
	}
	if err := c.validateSticker(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if err := ensurePositiveMap(map[string]int{
		"video.width":        c.Video.Width,
		"video.height":       c.Video.Height,
		"video.fps":          c.Video.FPS,
		"video.jpeg_quality": c.Video.JPEGQuality,
	}); err != nil {
		return err
	}
	// yuv420p chroma subsampling requires even dimensions.
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.New("video.width and video.height must be even")
	}
	if c.Video.JPEGQuality > 100 {
		return errors.New("video.jpeg_quality must be between 1 and 100")
	}
	if c.Video.CrossfadeSeconds < 0 {
		return errors.New("video.crossfade_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateCaption() error {
	if c.Caption.FontSize <= 0 {
		return errors.New("caption.font_size must be positive")
	}
	if c.Caption.LineHeight <= 0 {
		return errors.New("caption.line_height must be positive")
	}
	if c.Caption.HorizontalInset*2 >= c.Video.Width {
		return errors.New("caption.horizontal_inset leaves no room for text")
	}
	return nil
}

func (c *Config) validateSticker() error {
	if c.Sticker.HeightRatio <= 0 || c.Sticker.HeightRatio > 1 {
		return errors.New("sticker.height_ratio must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.CRF < 0 || c.Encode.CRF > 51 {
		return errors.New("encode.crf must be between 0 and 51")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
