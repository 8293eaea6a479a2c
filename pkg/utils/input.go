// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置，触摸优先于鼠标
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// Rect 屏幕上的矩形点击区域
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点 (x, y) 是否在矩形内（含边界）
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx <= r.X+r.W && fy >= r.Y && fy <= r.Y+r.H
}

// IsPointerPressed 检查鼠标左键或任一触摸点是否处于按下状态
func IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
