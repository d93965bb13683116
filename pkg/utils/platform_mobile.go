//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）时恒为 true
func IsMobile() bool {
	return true
}
