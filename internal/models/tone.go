package models

// Tone is the colour family used for badges and indicators.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneYellow Tone = "yellow"
	ToneOrange Tone = "orange"
	ToneRed    Tone = "red"
	ToneBlue   Tone = "blue"
	ToneGray   Tone = "gray"
)
