package ecs

import "reflect"

// 泛型查询辅助函数
//
// 用法：
//
//	star, ok := ecs.GetComponent[*components.StarComponent](em, id)
//	ids := ecs.GetEntitiesWith1[*components.StarComponent](em)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加类型为 T 的组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, exists := em.components[id]; exists {
		compMap[typeOf[T]()] = component
	}
}

// GetComponent 获取实体上类型为 T 的组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有类型为 T 的组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 移除实体上类型为 T 的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有组件 T1 的实体（按 ID 升序）
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	t1 := typeOf[T1]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[t1]; ok {
			result = append(result, id)
		}
	}
	sortIDs(result)
	return result
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的实体（按 ID 升序）
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	t1, t2 := typeOf[T1](), typeOf[T2]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[t1]; !ok {
			continue
		}
		if _, ok := compMap[t2]; !ok {
			continue
		}
		result = append(result, id)
	}
	sortIDs(result)
	return result
}
