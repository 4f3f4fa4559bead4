// Command polyvolume builds a polyline volume mesh from a YAML request and
// reports its size. It can also draw a preview and compile the matching shader.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/polyvolume"
	"github.com/gogpu/polyvolume/internal/preview"
)

func main() {
	var (
		config  = flag.String("config", "volume.yaml", "request file")
		output  = flag.String("preview", "", "write a PNG preview to this file")
		spirv   = flag.String("spirv", "", "write the compiled vertex shader (SPIR-V) to this file")
		size    = flag.Int("size", 512, "preview width and height")
		verbose = flag.Bool("v", false, "log build details")
	)
	flag.Parse()

	if *verbose {
		polyvolume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	req, err := LoadRequest(*config)
	if err != nil {
		log.Fatalf("Failed to load request: %v", err)
	}
	v, err := req.Volume()
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}
	m, err := v.CreateGeometry()
	if err != nil {
		log.Fatalf("Failed to build geometry: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("corner:     %v\n", v.CornerType())
	p.Printf("format:     %v\n", v.VertexFormat())
	p.Printf("vertices:   %d\n", m.VertexCount())
	p.Printf("triangles:  %d\n", m.TriangleCount())
	p.Printf("radius:     %.1f m\n", m.BoundingSphere.Radius)
	p.Printf("vertex buf: %d bytes\n", len(m.Interleave()))
	p.Printf("index buf:  %d bytes\n", len(m.IndexBytes()))

	if *output != "" {
		if err := savePreview(*output, m, *size); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Preview saved to %s (%dx%d)\n", *output, *size, *size)
	}

	if *spirv != "" {
		code, err := polyvolume.CompileShader(v.VertexFormat())
		if err != nil {
			log.Fatalf("Failed to compile shader: %v", err)
		}
		if err := os.WriteFile(*spirv, code, 0o644); err != nil {
			log.Fatalf("Failed to save shader: %v", err)
		}
		log.Printf("Shader saved to %s (%d bytes)\n", *spirv, len(code))
	}
}

func savePreview(path string, m *polyvolume.Mesh, size int) error {
	opts := preview.DefaultOptions()
	opts.Width, opts.Height = size, size
	img := preview.Render(m.Attributes.Position.Values, m.Indices, opts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
