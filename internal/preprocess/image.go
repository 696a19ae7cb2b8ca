package preprocess

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/rootuip/docintel/internal/core/domain"
)

// Normalize converts an image to grayscale, binarizes it with an Otsu
// threshold, and applies a 3x3 morphological close to remove speckle noise.
// Deterministic and side-effect free.
func Normalize(img image.Image) *image.Gray {
	gray := Grayscale(img)
	threshold := otsuThreshold(gray)
	bin := binarize(gray, threshold)
	return morphClose(bin)
}

// Grayscale renders any image into an 8-bit gray bitmap.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
	return gray
}

// otsuThreshold picks the binarization threshold that minimizes intra-class
// variance over the gray histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	total := 0
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	sum := 0.0
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumB, wB  float64
		best      = 128
		bestSigma = -1.0
	)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		sigma := wB * wF * (mB - mF) * (mB - mF)
		if sigma > bestSigma {
			bestSigma = sigma
			best = t
		}
	}
	return uint8(best)
}

func binarize(gray *image.Gray, threshold uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// morphClose dilates then erodes with a 3x3 rectangular kernel, closing
// pinhole gaps in dark regions of a binary image.
func morphClose(bin *image.Gray) *image.Gray {
	return erode(dilate(bin))
}

func dilate(bin *image.Gray) *image.Gray {
	return apply3x3(bin, func(maxV uint8, v uint8) uint8 {
		if v > maxV {
			return v
		}
		return maxV
	}, 0)
}

func erode(bin *image.Gray) *image.Gray {
	return apply3x3(bin, func(minV uint8, v uint8) uint8 {
		if v < minV {
			return v
		}
		return minV
	}, 255)
}

func apply3x3(bin *image.Gray, fold func(acc, v uint8) uint8, seed uint8) *image.Gray {
	bounds := bin.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			acc := seed
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || ny < bounds.Min.Y || nx >= bounds.Max.X || ny >= bounds.Max.Y {
						continue
					}
					acc = fold(acc, bin.GrayAt(nx, ny).Y)
				}
			}
			out.SetGray(x, y, color.Gray{Y: acc})
		}
	}
	return out
}

// Tensor scales a gray image to size x size and flattens it to row-major
// pixels in [0,1], the input shape the model backends expect.
func Tensor(gray *image.Gray, size int) domain.ImageTensor {
	scaled := image.NewGray(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), xdraw.Src, nil)

	pixels := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pixels[y*size+x] = float64(scaled.GrayAt(x, y).Y) / 255.0
		}
	}
	return domain.ImageTensor{Width: size, Height: size, Pixels: pixels}
}
