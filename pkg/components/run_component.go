package components

// RunComponent 标记实体属于哪一次播放
// 停止播放时按 RunID 一次性销毁；过期 RunID 的完成信号会被忽略
type RunComponent struct {
	RunID string
}
