package systems

import (
	"log"

	"github.com/gonewx/rainbow/pkg/components"
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/orbit"
)

// StarSystem 每帧推进所有彗星的运动状态机
//
// 每颗星每帧只更新一次，按实体 ID 顺序依次执行（单线程）。
type StarSystem struct {
	entityManager *ecs.EntityManager

	// 统计（用于调试输出）
	frameResets int
	totalResets int
	stars       int
}

// NewStarSystem 创建彗星系统
func NewStarSystem(em *ecs.EntityManager) *StarSystem {
	return &StarSystem{entityManager: em}
}

// Update 推进所有彗星
//
// 参数:
//   - deltaTime: 帧间隔（秒），负值按 0 处理
func (s *StarSystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		log.Printf("[StarSystem] Warning: negative deltaTime %.4f clamped to 0", deltaTime)
		deltaTime = 0
	}

	entities := ecs.GetEntitiesWith1[*components.StarComponent](s.entityManager)

	s.frameResets = 0
	s.stars = len(entities)
	for _, id := range entities {
		star, ok := ecs.GetComponent[*components.StarComponent](s.entityManager, id)
		if !ok || star.Star == nil {
			continue
		}

		if star.Star.Advance(deltaTime) == orbit.StateResetting {
			s.frameResets++
		}
	}
	s.totalResets += s.frameResets
}

// StarCount 上一帧更新的彗星数量
func (s *StarSystem) StarCount() int {
	return s.stars
}

// FrameResets 上一帧发生重置的彗星数量
func (s *StarSystem) FrameResets() int {
	return s.frameResets
}

// TotalResets 累计重置次数
func (s *StarSystem) TotalResets() int {
	return s.totalResets
}
