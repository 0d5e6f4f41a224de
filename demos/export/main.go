// Export grows a plant from a seed and writes it out, either as a single
// transparent PNG of the fully grown structure or as a growth video streamed
// through ffmpeg into a transparent WebM.
//
// Examples:
//
//	export -seed "seed #123" -species cherry -photo -o cherry.png
//	export -seed "seed #123" -species oak -fps 30 -duration 6 -o oak.webm
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/phanxgames/sapling"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[sapling] ")

	var (
		seed     = flag.String("seed", "seed #1", "seed string; the same seed always grows the same plant")
		species  = flag.String("species", "oak", "species preset: "+presetNames())
		width    = flag.Int("width", 512, "canvas width in pixels")
		height   = flag.Int("height", 512, "canvas height in pixels")
		padding  = flag.Int("padding", 24, "canvas padding in pixels")
		fps      = flag.Int("fps", 30, "video frames per second")
		duration = flag.Int("duration", 6, "video duration in seconds")
		photo    = flag.Bool("photo", false, "write a single still PNG instead of a video")
		out      = flag.String("o", "", `output path; "-" or empty writes a photo to stdout`)
	)
	flag.Parse()

	preset, ok := sapling.Presets[*species]
	if !ok {
		log.Fatalf("unknown species %q, want one of: %s", *species, presetNames())
	}

	plant, err := sapling.Grow(*seed, preset(), sapling.RenderOptions{
		Width: *width, Height: *height, Padding: *padding,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *photo {
		if err := writePhoto(plant, *out); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *out == "" || *out == "-" {
		log.Fatal("video mode needs an output path (-o plant.webm)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := writeVideo(ctx, plant, *width, *height, *fps, *duration, *out); err != nil {
		log.Fatal(err)
	}
}

func writePhoto(plant *sapling.Plant, out string) error {
	if out == "" || out == "-" {
		return plant.EncodePNG(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := plant.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeVideo(ctx context.Context, plant *sapling.Plant, width, height, fps, duration int, out string) error {
	sink, err := sapling.NewFFmpegSink(ctx, sapling.EncoderConfig{}, width, height, fps, out)
	if err != nil {
		return err
	}
	animErr := plant.Animate(ctx, sink, fps, duration, nil)
	if err := sink.Close(); err != nil {
		// The encoder's own failure is the more useful report.
		return err
	}
	return animErr
}

func presetNames() string {
	names := make([]string, 0, len(sapling.Presets))
	for name := range sapling.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
