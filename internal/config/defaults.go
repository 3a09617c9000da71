package config

const (
	defaultWorkDir          = "~/.local/share/slidecast/work"
	defaultLogDir           = "~/.local/share/slidecast/logs"
	defaultWidth            = 1024
	defaultHeight           = 576
	defaultFPS              = 30
	defaultCrossfadeSeconds = 0.4
	defaultJPEGQuality      = 95
	defaultFontSize         = 28
	defaultLineHeight       = 36
	defaultBottomMargin     = 35
	defaultHorizontalInset  = 40
	defaultOutlineRadius    = 3
	defaultStickerRatio     = 0.18
	defaultStickerMargin    = 15
	defaultVideoCodec       = "libx264"
	defaultPreset           = "medium"
	defaultCRF              = 23
	defaultAudioCodec       = "aac"
	defaultAudioBitrate     = "192k"
	defaultPixelFormat      = "yuv420p"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// defaultFontPaths lists bold sans fonts in common install locations. The
// first readable entry wins; the renderer falls back to a built-in bitmap
// face when none resolve.
func defaultFontPaths() []string {
	return []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
		"/System/Library/Fonts/Supplemental/Helvetica Bold.ttf",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Video: Video{
			Width:            defaultWidth,
			Height:           defaultHeight,
			FPS:              defaultFPS,
			CrossfadeSeconds: defaultCrossfadeSeconds,
			JPEGQuality:      defaultJPEGQuality,
		},
		Caption: Caption{
			FontSize:        defaultFontSize,
			LineHeight:      defaultLineHeight,
			BottomMargin:    defaultBottomMargin,
			HorizontalInset: defaultHorizontalInset,
			OutlineRadius:   defaultOutlineRadius,
			FontPaths:       defaultFontPaths(),
		},
		Sticker: Sticker{
			HeightRatio: defaultStickerRatio,
			Margin:      defaultStickerMargin,
		},
		Encode: Encode{
			VideoCodec:   defaultVideoCodec,
			Preset:       defaultPreset,
			CRF:          defaultCRF,
			AudioCodec:   defaultAudioCodec,
			AudioBitrate: defaultAudioBitrate,
			PixelFormat:  defaultPixelFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
