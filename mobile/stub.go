//go:build !mobile

// Package mobile 是 ebitenmobile bind 的入口。
// 桌面构建只编译此文件，移动端入口见 mobile.go（-tags mobile）。
package mobile

// Dummy 让桌面构建下的包保持可引用
func Dummy() {}
