package components

import (
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/vmath"
)

// CompositionComponent 星环（一组共享中心和半径带的彗星）
//
// 星环拥有其中所有彗星实体；销毁星环时必须销毁 Stars 中的全部实体。
type CompositionComponent struct {
	Center vmath.Vec3
	Radius float64
	Stars  []ecs.EntityID
}
