package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPhaseComponent struct {
	T, Dwell float64
}

type testColorComponent struct {
	R, G, B uint8
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("Created entity must not be InvalidEntity")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPhaseComponent{T: 3, Dwell: 1})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPhaseComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPhaseComponent)
	if retrieved.T != 3 || retrieved.Dwell != 1 {
		t.Errorf("Component data mismatch, got %+v", retrieved)
	}
}

func TestAddComponent_UnknownEntityIgnored(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(99), &testPhaseComponent{})
	if em.Exists(99) {
		t.Error("AddComponent must not create entities")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPhaseComponent{})

	// 标记删除
	em.DestroyEntity(id)
	if em.PendingDestroyCount() != 1 {
		t.Errorf("PendingDestroyCount() = %d, want 1", em.PendingDestroyCount())
	}

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities() = %d, want 1", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 重复标记同一个已删除实体不会重复计数
	em.DestroyEntity(id)
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("RemoveMarkedEntities() on removed entity = %d, want 0", removed)
	}
}

func TestGetEntitiesWith_SortedByID(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 50)
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPhaseComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testColorComponent{})
		}
		ids = append(ids, id)
	}

	all := em.GetEntitiesWith(reflect.TypeOf(&testPhaseComponent{}))
	if len(all) != 50 {
		t.Fatalf("got %d entities, want 50", len(all))
	}
	for i := range all {
		if all[i] != ids[i] {
			t.Fatalf("result[%d] = %d, want %d (sorted)", i, all[i], ids[i])
		}
	}

	both := em.GetEntitiesWith(
		reflect.TypeOf(&testPhaseComponent{}),
		reflect.TypeOf(&testColorComponent{}),
	)
	if len(both) != 25 {
		t.Errorf("got %d entities with both components, want 25", len(both))
	}
}
