package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the app (catalog list, animation detail).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 离开该场景
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
