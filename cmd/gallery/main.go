// Command gallery opens a window with an interactive parallax gallery.
//
//	gallery -config configs/photos.yaml -assets ./images
//
// Without -config the stock tuning is used. Image items come from the config,
// or from scanning -assets when the config lists none.
package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/phanxgames/gallery"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: built-in tuning)")
	assetsDir := flag.String("assets", "", "directory that item paths and fontPath are relative to")
	debug := flag.Bool("debug", false, "log frame stats and load failures to stderr")
	scriptPath := flag.String("script", "", "YAML or JSON test script to replay")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	title := flag.String("title", "Gallery", "window title")
	showFPS := flag.Bool("fps", false, "show the FPS overlay")
	shotDir := flag.String("screenshot-dir", "screenshots", "where screenshots are written")
	shotFormat := flag.String("screenshot-format", "png", "screenshot encoding: png or webp")
	flag.Parse()

	cfg := gallery.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = gallery.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	var assets fs.FS
	if *assetsDir != "" {
		assets = os.DirFS(*assetsDir)
		if len(cfg.Content.Items) == 0 {
			items, err := gallery.ScanItems(assets)
			if err != nil {
				log.Fatal(err)
			}
			cfg.Content.Items = items
			log.Printf("gallery: found %d images in %s", len(items), *assetsDir)
		}
	}

	format, err := gallery.ParseImageFormat(*shotFormat)
	if err != nil {
		log.Fatal(err)
	}

	g, err := gallery.NewGallery(cfg, assets, *width, *height)
	if err != nil {
		log.Fatal(err)
	}
	g.SetDebugMode(*debug)
	g.ScreenshotDir = *shotDir
	g.ScreenshotFormat = format

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := gallery.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		g.SetTestRunner(runner)
	}

	if err := gallery.Run(g, gallery.RunConfig{
		Title:     *title,
		Width:     *width,
		Height:    *height,
		ShowFPS:   *showFPS,
		Resizable: true,
	}); err != nil {
		log.Fatal(err)
	}
}
