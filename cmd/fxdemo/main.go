// Command fxdemo applies filter effects to image files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fx"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	logger = logrus.New()
	stats  = message.NewPrinter(language.English)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "blur":
		if err := runBlur(os.Args[2:]); err != nil {
			fail(err)
		}
	case "blend":
		if err := runBlend(os.Args[2:]); err != nil {
			fail(err)
		}
	case "chain":
		if err := runChain(os.Args[2:]); err != nil {
			fail(err)
		}
	case "scale":
		if err := runScale(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: fxdemo <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  blur  -in input.png -out output.png -radius 8 [-edge clamp|repeat|mirror|decal] [-j workers]")
	fmt.Fprintln(os.Stderr, "  blend -bg background.png -fg foreground.png -out output.png [-mode multiply]")
	fmt.Fprintln(os.Stderr, "  chain -in input.png -out output.png [-offset dx,dy] [-radius 4] [-gray] [-tint #rrggbbaa]")
	fmt.Fprintln(os.Stderr, "  scale -in input.png -out output.png -width 800 [-height 600] [-interp lanczos|bilinear]")
	fmt.Fprintln(os.Stderr, "Inputs may be PNG, JPEG, BMP, TIFF or WebP; outputs are PNG or JPEG by extension.")
}

func runBlur(args []string) error {
	fs := flag.NewFlagSet("blur", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	radius := fs.Float64("radius", 4, "blur radius in pixels")
	edge := fs.String("edge", "clamp", "edge mode: clamp, repeat, mirror or decal")
	workers := fs.Int("j", 0, "worker goroutines (0 uses all cores, -1 forces serial)")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogger(*verbose)
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	mode, err := fx.ParseEdgeMode(*edge)
	if err != nil {
		return err
	}

	src, err := loadPixmap(*inPath)
	if err != nil {
		return err
	}
	r := fx.New(fx.WithParallelism(*workers))
	defer r.Close()

	h, err := r.NewBlurEffect(float32(*radius), float32(*radius), 0, mode)
	if err != nil {
		return err
	}
	start := time.Now()
	out, err := r.Apply(h, src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.WithFields(logrus.Fields{
		"radius": *radius,
		"edge":   mode.String(),
	}).Info("applied blur")

	if err := savePixmap(out, *outPath); err != nil {
		return err
	}
	stats.Printf("blurred %d pixels in %v\n", out.Width()*out.Height(), elapsed.Round(time.Millisecond))
	return nil
}

func runBlend(args []string) error {
	fs := flag.NewFlagSet("blend", flag.ContinueOnError)
	bgPath := fs.String("bg", "", "background image")
	fgPath := fs.String("fg", "", "foreground image")
	outPath := fs.String("out", "", "output image")
	modeName := fs.String("mode", "srcover", "blend mode, e.g. multiply, screen, overlay")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogger(*verbose)
	if *bgPath == "" || *fgPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	mode, err := fx.ParseBlendMode(*modeName)
	if err != nil {
		return err
	}

	src, err := loadPixmap(*bgPath)
	if err != nil {
		return err
	}
	fgImg, err := loadImage(*fgPath)
	if err != nil {
		return err
	}
	r := fx.New()
	defer r.Close()

	bmp, err := r.NewBitmapFromImage(fgImg)
	if err != nil {
		return err
	}
	fb := fgImg.Bounds()
	// Stretch the foreground over the full background frame so every
	// blend mode produces a full-frame result.
	fg, err := r.NewBitmapEffect(bmp,
		fx.RectWH(0, 0, float32(fb.Dx()), float32(fb.Dy())),
		fx.RectWH(0, 0, float32(src.Width()), float32(src.Height())))
	if err != nil {
		return err
	}
	bg, err := r.NewOffsetEffect(0, 0, 0)
	if err != nil {
		return err
	}
	blended, err := r.NewBlendEffect(bg, fg, mode)
	if err != nil {
		return err
	}
	start := time.Now()
	out, err := r.Apply(blended, src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.WithFields(logrus.Fields{
		"mode": mode.String(),
		"bg":   *bgPath,
		"fg":   *fgPath,
	}).Info("applied blend")

	if err := savePixmap(out, *outPath); err != nil {
		return err
	}
	stats.Printf("blended %d pixels in %v\n", out.Width()*out.Height(), elapsed.Round(time.Millisecond))
	return nil
}

func runChain(args []string) error {
	fs := flag.NewFlagSet("chain", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	offset := fs.String("offset", "", "dx,dy translation in pixels")
	radius := fs.Float64("radius", 0, "blur radius in pixels")
	gray := fs.Bool("gray", false, "convert to grayscale")
	tint := fs.String("tint", "", "tint color, strength in alpha, e.g. #ff880080")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogger(*verbose)
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	src, err := loadPixmap(*inPath)
	if err != nil {
		return err
	}
	r := fx.New()
	defer r.Close()

	// Build each requested stage against the chain source, then fold
	// them into a single composed effect in application order.
	var stages []fx.Handle
	if *offset != "" {
		dx, dy, err := parseOffset(*offset)
		if err != nil {
			return err
		}
		h, err := r.NewOffsetEffect(dx, dy, 0)
		if err != nil {
			return err
		}
		stages = append(stages, h)
	}
	if *radius > 0 {
		h, err := r.NewBlurEffect(float32(*radius), float32(*radius), 0, fx.EdgeClamp)
		if err != nil {
			return err
		}
		stages = append(stages, h)
	}
	if *gray || *tint != "" {
		m := fx.IdentityMatrix()
		if *gray {
			m = fx.GrayscaleMatrix().Concat(m)
		}
		if *tint != "" {
			m = fx.TintMatrix(fx.Hex(*tint)).Concat(m)
		}
		cf, err := r.NewMatrixColorFilter(m)
		if err != nil {
			return err
		}
		h, err := r.NewColorFilterEffect(cf, 0)
		if err != nil {
			return err
		}
		stages = append(stages, h)
	}
	if len(stages) == 0 {
		return errors.New("no effects requested")
	}
	composed := stages[0]
	for _, s := range stages[1:] {
		composed, err = r.NewChainEffect(s, composed)
		if err != nil {
			return err
		}
	}

	eff := r.Wrap(composed)
	defer eff.Close()

	start := time.Now()
	out, err := eff.Apply(src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.WithFields(logrus.Fields{
		"stages": len(stages),
		"offset": *offset,
		"radius": *radius,
		"gray":   *gray,
		"tint":   *tint,
	}).Info("applied chain")

	if err := savePixmap(out, *outPath); err != nil {
		return err
	}
	stats.Printf("chained %d stages over %d pixels in %v\n",
		len(stages), out.Width()*out.Height(), elapsed.Round(time.Millisecond))
	return nil
}

func runScale(args []string) error {
	fs := flag.NewFlagSet("scale", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	width := fs.Int("width", 0, "target width (0 preserves aspect)")
	height := fs.Int("height", 0, "target height (0 preserves aspect)")
	interp := fs.String("interp", "lanczos", "interpolation: lanczos or bilinear")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogger(*verbose)
	if *inPath == "" || *outPath == "" || (*width <= 0 && *height <= 0) {
		return errors.New("missing required arguments")
	}
	var ip resize.InterpolationFunction
	switch strings.ToLower(*interp) {
	case "lanczos":
		ip = resize.Lanczos3
	case "bilinear":
		ip = resize.Bilinear
	default:
		return fmt.Errorf("unknown interpolation %q", *interp)
	}

	img, err := loadImage(*inPath)
	if err != nil {
		return err
	}
	start := time.Now()
	out := resize.Resize(uint(max(*width, 0)), uint(max(*height, 0)), img, ip)
	elapsed := time.Since(start)
	logger.WithFields(logrus.Fields{
		"width":  out.Bounds().Dx(),
		"height": out.Bounds().Dy(),
		"interp": *interp,
	}).Info("scaled image")

	if err := saveImage(out, *outPath); err != nil {
		return err
	}
	stats.Printf("scaled to %d x %d pixels in %v\n",
		out.Bounds().Dx(), out.Bounds().Dy(), elapsed.Round(time.Millisecond))
	return nil
}

func configureLogger(verbose bool) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	logger.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("loaded image")
	return img, nil
}

func loadPixmap(path string) (*fx.Pixmap, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	return fx.FromImage(img), nil
}

func saveImage(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return err
		}
		defer f.Close()
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return err
		}
		defer f.Close()
		return png.Encode(f, img)
	}
}

func savePixmap(p *fx.Pixmap, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return p.SavePNG(path)
	}
	return saveImage(p.ToImage(), path)
}

func parseOffset(s string) (dx, dy float32, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid offset %q, want dx,dy", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return float32(x), float32(y), nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
