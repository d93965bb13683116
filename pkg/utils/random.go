package utils

import "math/rand/v2"

// RandomSource 可注入的随机数源
//
// *rand.Rand 满足此接口；测试中可传入固定种子的实例或自定义序列。
type RandomSource interface {
	Float64() float64
}

// NewRandom 创建固定种子的 PCG 随机数源，相同种子产生相同序列
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomReal 返回 [min, max) 内的均匀随机数
func RandomReal(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
