package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定动画ID的详情场景，避免 game 与 scenes 的循环依赖
type SceneFactory func(animationID string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	homeFactory  func() Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置详情场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetHomeFactory 设置目录场景工厂函数
func (sm *SceneManager) SetHomeFactory(factory func() Scene) {
	sm.homeFactory = factory
}

// SwitchTo changes the active scene.
// 离开的场景如果实现了 Saveable 会先保存。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if s, ok := sm.currentScene.(Saveable); ok && sm.currentScene != scene {
		s.SaveOnExit()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Open 打开指定动画的详情场景
func (sm *SceneManager) Open(animationID string) {
	log.Printf("[SceneManager] 打开动画: %s", animationID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(animationID)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", animationID)
		return
	}
	sm.SwitchTo(newScene)
}

// GoHome 返回目录场景
func (sm *SceneManager) GoHome() {
	if sm.homeFactory == nil {
		log.Printf("[SceneManager] 错误: HomeFactory 未设置")
		return
	}
	sm.SwitchTo(sm.homeFactory())
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
