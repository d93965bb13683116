package ecs

import "testing"

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPhaseComponent{T: 2})

	phase, ok := GetComponent[*testPhaseComponent](em, id)
	if !ok {
		t.Fatal("GetComponent should find the component")
	}
	if phase.T != 2 {
		t.Errorf("T = %v, want 2", phase.T)
	}

	// 泛型写入与反射读取使用同一个类型键
	if !em.HasComponent(id, typeOf[*testPhaseComponent]()) {
		t.Error("reflect lookup should see generic component")
	}

	if HasComponent[*testColorComponent](em, id) {
		t.Error("HasComponent should be false for missing type")
	}
	if _, ok := GetComponent[*testColorComponent](em, id); ok {
		t.Error("GetComponent should fail for missing type")
	}

	RemoveComponent[*testPhaseComponent](em, id)
	if HasComponent[*testPhaseComponent](em, id) {
		t.Error("component should be removed")
	}
}

func TestGetEntitiesWith1And2(t *testing.T) {
	em := NewEntityManager()

	a := em.CreateEntity()
	AddComponent(em, a, &testPhaseComponent{})
	AddComponent(em, a, &testColorComponent{})

	b := em.CreateEntity()
	AddComponent(em, b, &testPhaseComponent{})

	c := em.CreateEntity()
	AddComponent(em, c, &testColorComponent{})

	phases := GetEntitiesWith1[*testPhaseComponent](em)
	if len(phases) != 2 || phases[0] != a || phases[1] != b {
		t.Errorf("GetEntitiesWith1 = %v, want [%d %d]", phases, a, b)
	}

	both := GetEntitiesWith2[*testPhaseComponent, *testColorComponent](em)
	if len(both) != 1 || both[0] != a {
		t.Errorf("GetEntitiesWith2 = %v, want [%d]", both, a)
	}
}
