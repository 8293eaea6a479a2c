// Package ecs 提供最小化的实体-组件存储
//
// 组件是纯数据结构，按其具体类型（通常为指针类型）索引。
// 系统通过泛型辅助函数 GetComponent / GetEntitiesWith1 等访问组件，
// 查询结果按 EntityID 升序返回，保证每帧遍历顺序稳定。
package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]any),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// DestroyEntityNow 立即删除实体及其全部组件
// 用于硬取消（如手动停止播放），不等待帧末清理
func (em *EntityManager) DestroyEntityNow(id EntityID) {
	delete(em.components, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// Exists 检查实体是否仍然存活
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// EntityCount 返回当前存活实体数量（包含已标记但尚未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// typeOf 返回类型参数 T 的 reflect.Type（T 为接口类型时同样有效）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件，同类型组件会被覆盖
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, exists := em.components[id]; exists {
		compMap[typeOf[T]()] = component
	}
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[typeOf[T]()]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[typeOf[T]()]
		return found
	}
	return false
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有组件 T 的所有实体（按 ID 升序）
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.query(typeOf[T]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的所有实体（按 ID 升序）
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1](), typeOf[T2]())
}

// query 返回拥有全部指定组件类型的实体
func (em *EntityManager) query(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}
