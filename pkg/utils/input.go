package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TapSlop 按下到释放之间的最大位移（像素），不超过时视为点击而不是拖拽
const TapSlop = 8

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragTracker 跟踪一个指针（鼠标按键或单指触摸）的拖拽
//
// 每帧调用一次 Step，传入该指针当前是否按下及其位置。
type DragTracker struct {
	state          DragState
	startX, startY int
	lastX, lastY   int
	maxOffset      int
}

// Step 推进一帧，返回相对上一帧的位移
func (d *DragTracker) Step(pressed bool, x, y int) (dx, dy int) {
	if !pressed {
		if d.state == DragStateStarted || d.state == DragStateDragging {
			d.state = DragStateEnded
		} else {
			d.state = DragStateNone
		}
		return 0, 0
	}

	if d.state == DragStateNone || d.state == DragStateEnded {
		d.state = DragStateStarted
		d.startX, d.startY = x, y
		d.lastX, d.lastY = x, y
		d.maxOffset = 0
		return 0, 0
	}

	d.state = DragStateDragging
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	d.maxOffset = max(d.maxOffset, abs(x-d.startX), abs(y-d.startY))
	return dx, dy
}

// State 当前拖拽状态
func (d *DragTracker) State() DragState {
	return d.state
}

// Start 按下时的位置
func (d *DragTracker) Start() (int, int) {
	return d.startX, d.startY
}

// IsTap 本帧刚释放且整个过程中位移不超过 TapSlop
func (d *DragTracker) IsTap() bool {
	return d.state == DragStateEnded && d.maxOffset <= TapSlop
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PrimaryTouch 返回第一个活动触摸的位置
func PrimaryTouch(buf []ebiten.TouchID) (ids []ebiten.TouchID, pressed bool, x, y int) {
	ids = ebiten.AppendTouchIDs(buf[:0])
	if len(ids) == 0 {
		return ids, false, 0, 0
	}
	x, y = ebiten.TouchPosition(ids[0])
	return ids, true, x, y
}
