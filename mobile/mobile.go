//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.mjohnson139.animations -o build/android/animations.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Animations.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/mjohnson139/expo-animations/pkg/app"
	"github.com/mjohnson139/expo-animations/pkg/config"
)

func init() {
	cfg, err := config.ParseAppConfig(mobileConfig)
	if err != nil {
		log.Fatalf("移动端配置无效: %v", err)
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
