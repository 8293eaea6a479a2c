package config

// 参数 ID（与 data/catalog.yaml 一致）
const (
	ParamSpeed     = "speed"
	ParamParticles = "particles"
	ParamColors    = "colors"
	ParamPosition  = "position"

	ParamDuration  = "duration"
	ParamIntensity = "intensity"
	ParamSound     = "sound"
	ParamOpacity   = "opacity"
	ParamSize      = "size"

	ParamFlameHeight = "flame-height"
	ParamFlameColor  = "flame-color"
	ParamSmoke       = "smoke"
	ParamEdgeOnly    = "edge-only"
)

// 选项取值
const (
	SmokeNone  = "None"
	SmokeLight = "Light"
	SmokeHeavy = "Heavy"

	EdgeOnlyOff = "Off"
	EdgeOnlyOn  = "On"
)
