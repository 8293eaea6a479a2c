//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
package mobile

import _ "embed"

//go:embed mobile.yaml
var mobileConfig []byte
