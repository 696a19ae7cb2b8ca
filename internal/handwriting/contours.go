package handwriting

import "image"

// foregroundThreshold inverts the binary page: dark pixels are content.
const foregroundThreshold = 128

// contourBoxes labels 8-connected dark components of a binary image and
// returns their bounding boxes in scan order.
func contourBoxes(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	visited := make([]bool, w*h)
	at := func(x, y int) bool {
		return img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y < foregroundThreshold
	}

	var boxes []image.Rectangle
	stack := make([]image.Point, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !at(x, y) {
				continue
			}

			// flood-fill one component, tracking its extent
			minX, minY, maxX, maxY := x, y, x, y
			visited[y*w+x] = true
			stack = append(stack[:0], image.Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if visited[ny*w+nx] || !at(nx, ny) {
							continue
						}
						visited[ny*w+nx] = true
						stack = append(stack, image.Point{X: nx, Y: ny})
					}
				}
			}

			boxes = append(boxes, image.Rect(
				bounds.Min.X+minX,
				bounds.Min.Y+minY,
				bounds.Min.X+maxX+1,
				bounds.Min.Y+maxY+1,
			))
		}
	}
	return boxes
}
