// Package main is the entry point for the voxedit model editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voxelforge/voxedit/internal/config"
	"github.com/voxelforge/voxedit/internal/editor"
	"github.com/voxelforge/voxedit/internal/logger"
	"github.com/voxelforge/voxedit/internal/render"
	"github.com/voxelforge/voxedit/pkg/formats"
	"github.com/voxelforge/voxedit/pkg/voxel"
)

var flagConvert = flag.Bool("convert", false, "Convert between model formats: voxedit -convert in.zox out.glb")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer log.Sync()

	opts := voxel.Options{AmbientOcclusion: cfg.Model.AmbientOcclusion}

	registry := formats.NewRegistry()
	codecs := []formats.Codec{
		formats.ZoxelCodec{},
		formats.SproxelCodec{},
		formats.QubicleCodec{},
		formats.NewPackCodec(),
		formats.GLTFCodec{Options: opts},
	}
	for _, c := range codecs {
		if err := registry.Register(c); err != nil {
			log.Fatal("codec registration failed", zap.Error(err))
		}
	}

	if *flagConvert {
		if err := convert(registry, flag.Args(), log); err != nil {
			log.Error("conversion failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	frames, title, err := openModel(registry, cfg, flag.Args())
	if err != nil {
		log.Error("failed to open model", zap.Error(err))
		os.Exit(1)
	}

	if err := runEditor(cfg, frames, title, opts, log); err != nil {
		log.Error("editor error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("editor closed normally")
}

// convert loads a model with one codec and saves it with another, chosen
// by the file extensions.
func convert(registry *formats.Registry, args []string, log *zap.Logger) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: voxedit -convert <input> <output>")
	}
	in, out := args[0], args[1]

	frames, err := registry.Load(in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", in, err)
	}
	log.Info("model loaded",
		zap.String("path", in),
		zap.Int("frames", frames.FrameCount()),
		zap.Int("width", frames.Width()),
		zap.Int("height", frames.Height()),
		zap.Int("depth", frames.Depth()),
	)

	if err := registry.Save(out, frames); err != nil {
		return fmt.Errorf("saving %s: %w", out, err)
	}
	log.Info("model saved", zap.String("path", out))
	return nil
}

// openModel loads the model named on the command line, or starts a fresh
// one at the configured default size.
func openModel(registry *formats.Registry, cfg *config.Config, args []string) (*voxel.FrameSet, string, error) {
	if len(args) > 0 {
		frames, err := registry.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		return frames, "voxedit - " + args[0], nil
	}
	return voxel.NewFrameSet(cfg.Model.Width, cfg.Model.Height, cfg.Model.Depth), "voxedit", nil
}

func runEditor(cfg *config.Config, frames *voxel.FrameSet, title string, opts voxel.Options, log *zap.Logger) error {
	window, err := render.NewWindow(render.WindowConfig{
		Title:      title,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	}, log)
	if err != nil {
		return err
	}
	defer window.Close()

	palette := editor.NewPalette(0xFFFFFFFF)
	tools := editor.NewRegistry()
	tools.Register(editor.NewDrawTool(palette))
	tools.Register(editor.NewEraseTool())
	tools.Register(editor.NewPaintTool(palette))
	tools.Register(editor.NewColourPickTool(palette))
	tools.Register(editor.NewFillTool(palette))
	tools.Register(editor.NewDragTool())

	viewer, err := render.NewViewer(window, frames, tools, opts, log)
	if err != nil {
		return err
	}
	defer viewer.Close()

	viewer.Run()
	return nil
}
