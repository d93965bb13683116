// Package main provides a headless verification tool for the comet motion
// state machine and its trail buffer.
//
// Usage:
//
//	go run ./cmd/verify_trail [flags]
//
// Flags:
//
//	--ticks <n>        Number of ticks to simulate (default: 10)
//	--period <sec>     Star period speedSec (default: 10)
//	--dt <sec>         Fixed time step per tick (default: 1)
//	--t0 <sec>         Initial phase accumulator (default: 0)
//	--radius <r>       Orbit radius (default: 10)
//	--direction <±1>   Orbit direction (default: 1)
//	--points <n>       Trail point count (default: 100)
//
// Each tick prints the branch that ran, t, dwell, the current position and
// the trail spread (largest distance from the newest point). A spread of 0
// means the trail has collapsed onto a single point.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/rainbow/pkg/orbit"
	"github.com/gonewx/rainbow/pkg/vmath"
)

var (
	ticksFlag     = flag.Int("ticks", 10, "Number of ticks to simulate")
	periodFlag    = flag.Float64("period", 10, "Star period (speedSec)")
	dtFlag        = flag.Float64("dt", 1, "Fixed time step per tick")
	t0Flag        = flag.Float64("t0", 0, "Initial phase accumulator")
	radiusFlag    = flag.Float64("radius", 10, "Orbit radius")
	directionFlag = flag.Int("direction", 1, "Orbit direction (+1 or -1)")
	pointsFlag    = flag.Int("points", orbit.TrailPointCount, "Trail point count")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	path, err := orbit.NewPath(vmath.Vec3{}, *radiusFlag, *directionFlag)
	if err != nil {
		log.Fatalf("invalid path: %v", err)
	}
	star, err := orbit.NewStar(path, *t0Flag, *periodFlag, *pointsFlag)
	if err != nil {
		log.Fatalf("invalid star: %v", err)
	}

	fmt.Fprintf(os.Stdout, "period=%.3f dt=%.3f t0=%.3f radius=%.3f direction=%d points=%d\n",
		*periodFlag, *dtFlag, *t0Flag, *radiusFlag, *directionFlag, *pointsFlag)
	fmt.Fprintf(os.Stdout, "%5s  %-10s %8s %8s %8s  %-28s %8s\n",
		"tick", "branch", "t", "dwell", "phase", "position", "spread")

	for tick := 1; tick <= *ticksFlag; tick++ {
		branch := star.Advance(*dtFlag)
		pos := star.Position()
		fmt.Fprintf(os.Stdout, "%5d  %-10s %8.3f %8.3f %8.3f  (%7.3f, %7.3f, %7.3f) %8.3f\n",
			tick, branch, star.T(), star.Dwell(), star.Phase(),
			pos.X, pos.Y, pos.Z, trailSpread(star.Trail()))
	}
}

// trailSpread 拖尾各点到最新点的最大距离
func trailSpread(t *orbit.Trail) float64 {
	newest := t.Newest()
	spread := 0.0
	for i := 0; i < t.Len(); i++ {
		if d := t.At(i).Sub(newest).Len(); d > spread {
			spread = d
		}
	}
	return spread
}
