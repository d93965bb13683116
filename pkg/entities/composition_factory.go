package entities

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/rainbow/pkg/components"
	"github.com/gonewx/rainbow/pkg/config"
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/orbit"
	"github.com/gonewx/rainbow/pkg/utils"
	"github.com/gonewx/rainbow/pkg/vmath"
)

// CompositionParams 星环生成请求
type CompositionParams struct {
	Count  int
	Radius float64
	Center vmath.Vec3
}

// StarSeed 一颗彗星的生成参数（纯数据，由 PlanComposition 随机得到）
type StarSeed struct {
	Radius    float64
	SpeedSec  float64
	InitialT  float64
	Direction int
	Color     color.RGBA
}

// PlanComposition 为星环中的每颗彗星随机生成参数
//
// 每颗星：
//   - 半径 r ∈ [radius*RadiusMinRatio, radius)
//   - 周期 s ∈ [Period.Min, Period.Max)
//   - 初始相位 t ∈ [0, s*0.5)
//   - 颜色由 r 在半径带中的位置经 ease-in-out 缓动后映射色相
//
// 相同的随机源序列产生相同结果。
func PlanComposition(rng utils.RandomSource, params CompositionParams, cfg config.CompositionConfig) ([]StarSeed, error) {
	if params.Count < 0 {
		return nil, fmt.Errorf("composition count must be >= 0, got %d", params.Count)
	}
	if !(params.Radius > 0) || math.IsInf(params.Radius, 0) {
		return nil, fmt.Errorf("%w: composition radius %v", orbit.ErrInvalidRadius, params.Radius)
	}

	rMin := params.Radius * cfg.RadiusMinRatio
	rMax := params.Radius
	direction := cfg.Direction
	if direction == 0 {
		direction = 1
	}

	seeds := make([]StarSeed, params.Count)
	for i := range seeds {
		r := utils.RandomReal(rng, rMin, rMax)
		s := utils.RandomReal(rng, cfg.Period.Min, cfg.Period.Max)
		t := utils.RandomReal(rng, 0, s*orbit.TravelFraction)

		rate := 0.0
		if rMax > rMin {
			rate = (r - rMin) / (rMax - rMin)
		}

		seeds[i] = StarSeed{
			Radius:    r,
			SpeedSec:  s,
			InitialT:  t,
			Direction: direction,
			Color:     utils.HueColor(utils.EaseInOutBezier(rate), cfg.HueAtMinRadius, cfg.HueAtMaxRadius),
		}
	}
	return seeds, nil
}

// NewCompositionEntity 按生成参数创建星环实体和其中的彗星实体
//
// 参数:
//   - em: 实体管理器
//   - seeds: PlanComposition 的结果
//   - params: 星环中心与半径
//   - trail: 拖尾点数与线宽
//   - resolution: 当前视口分辨率（写入每条拖尾）
//
// 返回:
//   - ecs.EntityID: 星环实体 ID
//   - error: 某颗星参数无效时返回错误（已创建的实体会被回收）
func NewCompositionEntity(em *ecs.EntityManager, seeds []StarSeed, params CompositionParams, trail config.TrailConfig, resolution vmath.Vec2) (ecs.EntityID, error) {
	compID := em.CreateEntity()
	comp := &components.CompositionComponent{
		Center: params.Center,
		Radius: params.Radius,
		Stars:  make([]ecs.EntityID, 0, len(seeds)),
	}

	for i, seed := range seeds {
		id, err := newStarEntity(em, compID, seed, params.Center, trail, resolution)
		if err != nil {
			// 回收已创建的实体
			for _, starID := range comp.Stars {
				em.DestroyEntity(starID)
			}
			em.DestroyEntity(compID)
			return ecs.InvalidEntity, fmt.Errorf("failed to create star %d: %w", i, err)
		}
		comp.Stars = append(comp.Stars, id)
	}

	ecs.AddComponent(em, compID, comp)
	return compID, nil
}

func newStarEntity(em *ecs.EntityManager, compID ecs.EntityID, seed StarSeed, center vmath.Vec3, trail config.TrailConfig, resolution vmath.Vec2) (ecs.EntityID, error) {
	path, err := orbit.NewPath(center, seed.Radius, seed.Direction)
	if err != nil {
		return ecs.InvalidEntity, err
	}
	star, err := orbit.NewStar(path, seed.InitialT, seed.SpeedSec, trail.Points)
	if err != nil {
		return ecs.InvalidEntity, err
	}
	star.Trail().SetResolution(resolution.X, resolution.Y)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.StarComponent{Star: star, Composition: compID})
	ecs.AddComponent(em, id, &components.TrailStyleComponent{
		Color:     seed.Color,
		LineWidth: trail.LineWidth,
		Additive:  trail.Additive,
	})
	return id, nil
}

// SpawnComposition 规划并创建一个星环
func SpawnComposition(em *ecs.EntityManager, rng utils.RandomSource, params CompositionParams, cfg *config.SceneConfig, resolution vmath.Vec2) (ecs.EntityID, error) {
	seeds, err := PlanComposition(rng, params, cfg.Composition)
	if err != nil {
		return ecs.InvalidEntity, err
	}

	id, err := NewCompositionEntity(em, seeds, params, cfg.Trail, resolution)
	if err != nil {
		return ecs.InvalidEntity, err
	}

	log.Printf("[CompositionFactory] Spawned composition %d: %d stars, radius=%.1f, center=(%.1f, %.1f, %.1f)",
		id, len(seeds), params.Radius, params.Center.X, params.Center.Y, params.Center.Z)
	return id, nil
}

// DestroyComposition 标记星环及其所有彗星待删除
//
// 实际删除发生在 EntityManager.RemoveMarkedEntities。
func DestroyComposition(em *ecs.EntityManager, id ecs.EntityID) bool {
	comp, ok := ecs.GetComponent[*components.CompositionComponent](em, id)
	if !ok {
		return false
	}
	for _, starID := range comp.Stars {
		em.DestroyEntity(starID)
	}
	em.DestroyEntity(id)
	log.Printf("[CompositionFactory] Destroyed composition %d (%d stars)", id, len(comp.Stars))
	return true
}

// DestroyAllCompositions 标记所有星环待删除，返回星环数量
func DestroyAllCompositions(em *ecs.EntityManager) int {
	ids := ecs.GetEntitiesWith1[*components.CompositionComponent](em)
	for _, id := range ids {
		DestroyComposition(em, id)
	}
	return len(ids)
}

// ClickSpawnParams 根据点击的世界坐标计算星环生成请求
//
// 半径在 ClickSpawn.Radius 内随机，数量按 round(r / ReferenceRadius * ReferenceCount) 缩放，
// 中心取点击点的 X/Z，Y 固定为 0。
func ClickSpawnParams(rng utils.RandomSource, world vmath.Vec3, cfg config.ClickSpawnConfig) CompositionParams {
	r := utils.RandomReal(rng, cfg.Radius.Min, cfg.Radius.Max)
	n := int(math.Round(r / cfg.ReferenceRadius * float64(cfg.ReferenceCount)))
	return CompositionParams{
		Count:  n,
		Radius: r,
		Center: vmath.V3(world.X, 0, world.Z),
	}
}

// InitialParams 启动时星环的生成请求
func InitialParams(spec config.CompositionSpec) CompositionParams {
	return CompositionParams{
		Count:  spec.Count,
		Radius: spec.Radius,
		Center: vmath.V3(spec.Center[0], spec.Center[1], spec.Center[2]),
	}
}
