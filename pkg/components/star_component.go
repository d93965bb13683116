package components

import (
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/orbit"
)

// StarComponent 关联一颗彗星的运动状态机
//
// 轨道、相位、停留计时和拖尾缓冲都由 orbit.Star 持有；
// StarSystem 每帧对每个 StarComponent 调用一次 Advance。
type StarComponent struct {
	Star *orbit.Star

	// Composition 所属星环实体，星环销毁时一并销毁
	Composition ecs.EntityID
}
