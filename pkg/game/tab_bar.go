package game

// TabBar 页面标签栏的布局
//
// 标签从 (X, Y) 开始水平排列，宽度相同。坐标与粒子场使用同一像素空间，
// 终端后端使用虚拟像素。
type TabBar struct {
	X, Y     float64
	TabWidth float64
	Height   float64
	Gap      float64
	Count    int
}

// Rect 返回第 i 个标签的矩形 (x, y, w, h)
func (tb TabBar) Rect(i int) (x, y, w, h float64) {
	return tb.X + float64(i)*(tb.TabWidth+tb.Gap), tb.Y, tb.TabWidth, tb.Height
}

// HitTest 返回点中的标签索引；落在间隙或栏外时返回 false
func (tb TabBar) HitTest(px, py float64) (int, bool) {
	for i := 0; i < tb.Count; i++ {
		x, y, w, h := tb.Rect(i)
		if px >= x && px < x+w && py >= y && py < y+h {
			return i, true
		}
	}
	return -1, false
}
