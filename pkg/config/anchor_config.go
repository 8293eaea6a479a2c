package config

// Anchor 粒子发射锚点，以视口比例表示（0~1）
//
// 调用者只需提供视口尺寸，通过 AnchorPoint 获取像素坐标：
//
//	x, y := config.AnchorPoint("top", 390, 844)
type Anchor struct {
	FX      float64 // X 方向比例（0=左, 1=右）
	FY      float64 // Y 方向比例（0=上, 1=下）
	Comment string  // 视觉效果说明
}

// 锚点名称
const (
	AnchorCenter    = "center"
	AnchorTop       = "top"
	AnchorBottom    = "bottom"
	AnchorFlameBase = "flame-base"
)

// Anchors 锚点配置表
//
// center/top/bottom 对应 position 参数的三个选项；
// flame-base 是火焰粒子的聚集点（屏幕下方 70% 处）。
var Anchors = map[string]Anchor{
	AnchorCenter:    {FX: 0.5, FY: 0.5, Comment: "屏幕中心"},
	AnchorTop:       {FX: 0.5, FY: 0.25, Comment: "上四分之一处"},
	AnchorBottom:    {FX: 0.5, FY: 0.75, Comment: "下四分之一处"},
	AnchorFlameBase: {FX: 0.5, FY: 0.7, Comment: "火焰底部"},
}

// AnchorPoint 计算锚点在视口中的像素坐标
// 未知锚点名使用 center（与 position 参数缺省行为一致）
func AnchorPoint(name string, width, height float64) (x, y float64) {
	anchor, ok := Anchors[name]
	if !ok {
		anchor = Anchors[AnchorCenter]
	}
	return width * anchor.FX, height * anchor.FY
}
