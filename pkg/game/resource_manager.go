package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// ResourceManager 管理字体资源
// 字体源只解析一次，不同字号的 GoTextFace 按需创建并缓存。
type ResourceManager struct {
	sources       map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sources:       make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadFont 加载内置字体的指定字号
//
// Example:
//
//	face, err := rm.LoadFont(FontBold, 36)
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if face, ok := rm.fontFaceCache[cacheKey]; ok {
		return face, nil
	}

	source, ok := rm.sources[name]
	if !ok {
		data, known := builtinFonts[name]
		if !known {
			return nil, fmt.Errorf("unknown font %q", name)
		}
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
		}
		rm.sources[name] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// Face 返回粗体字号，加载失败时返回 nil
// 用作渲染系统的字体来源。
func (rm *ResourceManager) Face(size float64) *text.GoTextFace {
	face, err := rm.LoadFont(FontBold, size)
	if err != nil {
		return nil
	}
	return face
}
