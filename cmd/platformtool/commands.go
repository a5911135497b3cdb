package main

import (
	"fmt"

	"github.com/Faultbox/platform-builder/internal/config"
	"github.com/Faultbox/platform-builder/internal/platform"
)

func cmdBuild(cfg *config.Config, args []string) error {
	path, err := layoutArg("build", args)
	if err != nil {
		return err
	}

	p, obj, err := load(cfg, path)
	if err != nil {
		return err
	}

	ok, err := p.Rebuild()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: nothing to build (need at least two sections with points)", path)
	}

	m := p.Mesh()
	fmt.Printf("Built:     %s\n", obj.Path())
	fmt.Printf("Sections:  %d\n", len(p.Sections()))
	fmt.Printf("Parts:     %d\n", len(p.Output()))
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	return nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	path, err := layoutArg("info", args)
	if err != nil {
		return err
	}

	p, _, err := load(cfg, path)
	if err != nil {
		return err
	}

	title := "none"
	if st := p.Strategy(); st != nil {
		title = st.Title()
	}
	fmt.Printf("Layout:   %s\n", path)
	fmt.Printf("Strategy: %s\n", title)
	fmt.Printf("Sections: %d\n", len(p.Sections()))
	fmt.Println()

	for _, s := range p.Sections() {
		branches := 0
		for _, pt := range s.Points() {
			branches += len(pt.Branches)
		}
		fmt.Printf("  %-12s at %v  points=%d point-branches=%d section-branches=%d\n",
			s.Name(), s.Position, s.Len(), branches, len(s.Branches))
	}

	sum := summarize(p)
	fmt.Println()
	if !sum.Built {
		fmt.Println("Build:    vetoed by strategy")
	}
	fmt.Printf("Matrix:   %d rows x %d points\n", sum.Rows, sum.Points)
	fmt.Printf("Strips:   %d (%d after welding)\n", sum.Strips, sum.Welded)
	fmt.Printf("Triangles: %d\n", sum.Triangles)
	return nil
}

// summary is what a build of the current layout would produce.
type summary struct {
	Built     bool
	Rows      int
	Points    int
	Strips    int
	Welded    int
	Triangles int
}

// summarize runs the platform's strategy and stitcher without exporting.
func summarize(p *platform.Platform) summary {
	res, built := p.Preview()
	sum := summary{
		Built:  built,
		Rows:   len(res.Matrix.Rows),
		Points: res.Matrix.Width(),
		Strips: len(res.Strips),
		Welded: len(res.Welded),
	}
	for _, part := range res.Parts(p.Transform().Placement()) {
		sum.Triangles += part.Mesh.TriangleCount()
	}
	return sum
}
